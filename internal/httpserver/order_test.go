package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/skomarov/eshop/internal/models"
	"github.com/skomarov/eshop/internal/transport"
)

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 5)

	addToCart(t, env, userID, productID, variantID, 2)

	body := transport.CreateOrderRequest{ShippingAddress: testShippingAddress()}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/orders", body)
	asUser(c, userID)
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, userID, resp.UserID)
	require.Equal(t, models.OrderStatusPending, resp.Status)
	require.Len(t, resp.Items, 1)
	require.Equal(t, uint(2), resp.Items[0].Quantity)
	require.True(t, resp.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	require.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("20.00")), "total %s", resp.TotalAmount)
	require.Equal(t, "Springfield", resp.ShippingAddress.City)

	// Checkout consumes the cart.
	var carts int64
	require.NoError(t, env.DB.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&carts).Error)
	require.Zero(t, carts)

	// Stock was decremented.
	require.Equal(t, uint(3), productStock(t, env, productID))
}

func TestCreateOrderFreezesPrice(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 5)

	addToCart(t, env, userID, productID, variantID, 1)

	body := transport.CreateOrderRequest{ShippingAddress: testShippingAddress()}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/orders", body)
	asUser(c, userID)
	require.NoError(t, env.Order.CreateOrder(c))

	var created transport.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// A later price change must not leak into the placed order.
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", productID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/api/orders/"+created.ID.String(), nil)
	asUser(c2, userID)
	c2.SetParamNames("orderId")
	c2.SetParamValues(created.ID.String())
	require.NoError(t, env.Order.GetOrderByID(c2))

	var fetched transport.OrderView
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &fetched))
	require.True(t, fetched.Items[0].Price.Equal(decimal.RequireFromString("10.00")), "price %s", fetched.Items[0].Price)
	require.True(t, fetched.TotalAmount.Equal(decimal.RequireFromString("10.00")))
}

func TestCreateOrderAfterPriceChange(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 5)

	addToCart(t, env, userID, productID, variantID, 2)

	// Price changes between the cart write and checkout: the order line
	// freezes the new price, while the total is copied from the stored cart
	// total and goes stale.
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", productID).
		Update("price", decimal.RequireFromString("12.50")).Error)

	body := transport.CreateOrderRequest{ShippingAddress: testShippingAddress()}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/orders", body)
	asUser(c, userID)
	require.NoError(t, env.Order.CreateOrder(c))

	var resp transport.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Items[0].Price.Equal(decimal.RequireFromString("12.50")), "price %s", resp.Items[0].Price)
	require.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("20.00")), "total %s", resp.TotalAmount)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)

	body := transport.CreateOrderRequest{ShippingAddress: testShippingAddress()}
	_, c := env.doJSONRequest(http.MethodPost, "/api/orders", body)
	asUser(c, userID)
	err := env.Order.CreateOrder(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCreateOrderIncompleteAddress(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 5)

	addToCart(t, env, userID, productID, variantID, 1)

	addr := testShippingAddress()
	addr.PostalCode = ""
	_, c := env.doJSONRequest(http.MethodPost, "/api/orders", transport.CreateOrderRequest{ShippingAddress: addr})
	asUser(c, userID)
	err := env.Order.CreateOrder(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCreateOrderStockClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 1)

	addToCart(t, env, userID, productID, variantID, 5)

	body := transport.CreateOrderRequest{ShippingAddress: testShippingAddress()}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/orders", body)
	asUser(c, userID)
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Ordering more than is on hand still succeeds and floors the stock.
	require.Equal(t, uint(0), productStock(t, env, productID))
}

func TestGetOrders(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 10)

	addToCart(t, env, userID, productID, variantID, 1)
	_, err := env.Order.Svc.CreateOrder(t.Context(), userID, testShippingAddress())
	require.NoError(t, err)

	addToCart(t, env, userID, productID, variantID, 2)
	_, err = env.Order.Svc.CreateOrder(t.Context(), userID, testShippingAddress())
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/orders", nil)
	asUser(c, userID)
	require.NoError(t, env.Order.GetOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}

func TestGetOrderOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := createTestUser(t, env)
	other := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 10)

	addToCart(t, env, owner, productID, variantID, 1)
	order, err := env.Order.Svc.CreateOrder(t.Context(), owner, testShippingAddress())
	require.NoError(t, err)

	_, c := env.doJSONRequest(http.MethodGet, "/api/orders/"+order.ID.String(), nil)
	asUser(c, other)
	c.SetParamNames("orderId")
	c.SetParamValues(order.ID.String())
	err = env.Order.GetOrderByID(c)
	require.Equal(t, http.StatusForbidden, httpErrorCode(t, err))
}

func TestGetOrderInvalidID(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)

	_, c := env.doJSONRequest(http.MethodGet, "/api/orders/not-a-uuid", nil)
	asUser(c, userID)
	c.SetParamNames("orderId")
	c.SetParamValues("not-a-uuid")
	err := env.Order.GetOrderByID(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestUpdateOrderStatus(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 10)

	addToCart(t, env, userID, productID, variantID, 1)
	order, err := env.Order.Svc.CreateOrder(t.Context(), userID, testShippingAddress())
	require.NoError(t, err)

	body := transport.UpdateOrderStatusRequest{Status: "shipped"}
	rec, c := env.doJSONRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/status", body)
	c.SetParamNames("orderId")
	c.SetParamValues(order.ID.String())
	require.NoError(t, env.Order.UpdateOrderStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.OrderStatusShipped, resp.Status)
}

func TestUpdateOrderStatusRejectsUnknown(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 10)

	addToCart(t, env, userID, productID, variantID, 1)
	order, err := env.Order.Svc.CreateOrder(t.Context(), userID, testShippingAddress())
	require.NoError(t, err)

	body := transport.UpdateOrderStatusRequest{Status: "archived"}
	_, c := env.doJSONRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/status", body)
	c.SetParamNames("orderId")
	c.SetParamValues(order.ID.String())
	err = env.Order.UpdateOrderStatus(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestCancelOrderRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	userID := createTestUser(t, env)
	productID, variantID := createTestProduct(t, env, "10.00", 5)

	addToCart(t, env, userID, productID, variantID, 3)
	order, err := env.Order.Svc.CreateOrder(t.Context(), userID, testShippingAddress())
	require.NoError(t, err)
	require.Equal(t, uint(2), productStock(t, env, productID))

	body := transport.UpdateOrderStatusRequest{Status: "cancelled"}
	_, c := env.doJSONRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/status", body)
	c.SetParamNames("orderId")
	c.SetParamValues(order.ID.String())
	require.NoError(t, env.Order.UpdateOrderStatus(c))
	require.Equal(t, uint(5), productStock(t, env, productID))

	// Cancelling twice must not restore stock twice.
	_, c2 := env.doJSONRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/status", body)
	c2.SetParamNames("orderId")
	c2.SetParamValues(order.ID.String())
	require.NoError(t, env.Order.UpdateOrderStatus(c2))
	require.Equal(t, uint(5), productStock(t, env, productID))
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	body := transport.UpdateOrderStatusRequest{Status: "shipped"}
	_, c := env.doJSONRequest(http.MethodPut, "/api/orders/018f1a2b-0000-7000-8000-000000000009/status", body)
	c.SetParamNames("orderId")
	c.SetParamValues("018f1a2b-0000-7000-8000-000000000009")
	err := env.Order.UpdateOrderStatus(c)
	require.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
}
