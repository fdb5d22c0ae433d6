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

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, userID, req.ShippingAddress)
	if err != nil {
		return serviceError(c, "create_order", err)
	}

	publishEvent(c, h.Producer, "order_events", map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.TotalAmount,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.GetUserOrders(ctx, userID)
	if err != nil {
		return serviceError(c, "get_orders", err)
	}

	l.Info("get_orders_success", "count", len(orders))
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrderByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "invalid order id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order ID")
	}

	order, err := h.Svc.GetOrderByID(ctx, userID, orderID)
	if err != nil {
		return serviceError(c, "get_order", err)
	}

	l.Info("get_order_success")
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		l.Warn("update_order_status_error", "status", 400, "reason", "invalid order id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order ID")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, orderID, req.Status)
	if err != nil {
		return serviceError(c, "update_order_status", err)
	}

	publishEvent(c, h.Producer, "order_events", map[string]any{
		"type":    "order_status_updated",
		"userID":  order.UserID,
		"orderID": order.ID,
		"status":  order.Status,
	})

	l.Info("update_order_status_success", "order_id", order.ID, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
