package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/skomarov/eshop/pkg/middleware/auth"
)

type Deps struct {
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	WishlistHandler *WishlistHTTP
	ProductHandler  *ProductHTTP
	CategoryHandler *CategoryHTTP
	AuthHandler     *AuthHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.New(d.JWTSecret)

	api := e.Group("/api")

	cart := api.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/clear", d.CartHandler.ClearCart)
	cart.DELETE("/:productId/:variantId", d.CartHandler.RemoveFromCart)

	orders := api.Group("/orders", authMW.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:orderId", d.OrderHandler.GetOrderByID)
	orders.PUT("/:orderId/status", d.OrderHandler.UpdateOrderStatus, authMW.RequireAdmin)

	wishlist := api.Group("/wishlist", authMW.RequireAuth)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.AddToWishlist)
	wishlist.DELETE("/clear", d.WishlistHandler.ClearWishlist)
	wishlist.DELETE("/:productId", d.WishlistHandler.RemoveFromWishlist)

	products := api.Group("/products")
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	productsAdmin := products.Group("", authMW.RequireAdmin)
	productsAdmin.POST("", d.ProductHandler.CreateProduct)
	productsAdmin.PATCH("/:id", d.ProductHandler.PatchProduct)
	productsAdmin.DELETE("/:id", d.ProductHandler.DeleteProduct)

	categories := api.Group("/categories")
	categories.GET("", d.CategoryHandler.GetCategories)
	categories.POST("", d.CategoryHandler.CreateCategory, authMW.RequireAdmin)
	categories.DELETE("/:id", d.CategoryHandler.DeleteCategory, authMW.RequireAdmin)

	subcategories := api.Group("/subcategories")
	subcategories.GET("", d.CategoryHandler.GetSubcategories)
	subcategories.POST("", d.CategoryHandler.CreateSubcategory, authMW.RequireAdmin)
	subcategories.DELETE("/:id", d.CategoryHandler.DeleteSubcategory, authMW.RequireAdmin)

	users := api.Group("/users")
	users.POST("/register", d.AuthHandler.Register)
	users.POST("/login", d.AuthHandler.Login)
	users.GET("", d.AuthHandler.GetUsers, authMW.RequireAdmin)
	users.DELETE("/:id", d.AuthHandler.DeleteUser, authMW.RequireAdmin)
}
