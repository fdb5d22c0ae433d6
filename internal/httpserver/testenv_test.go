package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skomarov/eshop/internal/models"
	"github.com/skomarov/eshop/internal/repo"
	"github.com/skomarov/eshop/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Cart     *CartHTTP
	Order    *OrderHTTP
	Wishlist *WishlistHTTP
	Product  *ProductHTTP
	Category *CategoryHTTP
	Auth     *AuthHTTP

	JWTSecret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// The in-memory database lives on a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.AutoMigrate(db))

	store := &repo.GormRepo{DB: db}
	secret := []byte("test-secret")

	env := &testEnv{
		T:         t,
		E:         echo.New(),
		DB:        db,
		JWTSecret: secret,
	}

	env.Cart = &CartHTTP{Svc: &service.CartService{Repo: store}}
	env.Order = &OrderHTTP{Svc: &service.OrderService{Repo: store}}
	env.Wishlist = &WishlistHTTP{Svc: &service.WishlistService{Repo: store}}
	env.Product = &ProductHTTP{Svc: &service.CatalogService{Repo: store}}
	env.Category = &CategoryHTTP{Svc: &service.CatalogService{Repo: store}}
	env.Auth = &AuthHTTP{Svc: &service.AuthService{Repo: store, JWTSecret: secret}}

	t.Cleanup(func() { sqlDB.Close() })

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser places the identity into the request context the way the auth
// middleware does after validating a token.
func asUser(c echo.Context, userID uuid.UUID) {
	c.Set("user_id", userID.String())
	c.Set("role", "customer")
}

func createTestUser(t *testing.T, env *testEnv) uuid.UUID {
	t.Helper()
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         "customer",
	}
	require.NoError(t, env.DB.Create(&user).Error)
	return user.ID
}

// createTestProduct seeds a product with a single variant and returns both ids.
func createTestProduct(t *testing.T, env *testEnv, price string, stock uint) (uuid.UUID, uuid.UUID) {
	t.Helper()
	product := models.Product{
		Name:        "test product",
		Description: "test description",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Images:      []string{"https://img.example.com/1.jpg"},
		Variants:    []models.ProductVariant{{Size: "M", Color: "black"}},
	}
	require.NoError(t, env.DB.Create(&product).Error)
	return product.ID, product.Variants[0].ID
}

func productStock(t *testing.T, env *testEnv, productID uuid.UUID) uint {
	t.Helper()
	var p models.Product
	require.NoError(t, env.DB.First(&p, "id = ?", productID).Error)
	return p.Stock
}

func addToCart(t *testing.T, env *testEnv, userID, productID, variantID uuid.UUID, quantity uint) {
	t.Helper()
	_, err := env.Cart.Svc.AddToCart(context.Background(), userID, productID, variantID, quantity)
	require.NoError(t, err)
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func testShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Street:     "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
}
