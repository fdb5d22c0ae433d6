package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skomarov/eshop/internal/mykafka"
	"github.com/skomarov/eshop/internal/service"
	"github.com/skomarov/eshop/internal/transport"
	"github.com/skomarov/eshop/pkg/logging"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return serviceError(c, "get_cart", err)
	}

	l.Info("get_cart_success")
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == "" || req.VariantID == "" {
		l.Warn("add_to_cart_error", "status", 400, "reason", "missing ids")
		return echo.NewHTTPError(http.StatusBadRequest, "productId and variantId are required")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	variantID, err := uuid.Parse(req.VariantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid variantId")
	}

	cart, err := h.Svc.AddToCart(ctx, userID, productID, variantID, req.Quantity)
	if err != nil {
		return serviceError(c, "add_to_cart", err)
	}

	publishEvent(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"variantID": variantID,
	})

	l.Info("add_to_cart_success")
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid variantId")
	}

	cart, err := h.Svc.RemoveFromCart(ctx, userID, productID, variantID)
	if err != nil {
		return serviceError(c, "remove_from_cart", err)
	}

	publishEvent(c, h.Producer, "cart_events", map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
		"variantID": variantID,
	})

	l.Info("remove_from_cart_success")
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.ClearCart(ctx, userID)
	if err != nil {
		return serviceError(c, "clear_cart", err)
	}

	publishEvent(c, h.Producer, "cart_events", map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	l.Info("clear_cart_success")
	return c.JSON(http.StatusOK, cart)
}
