package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skomarov/eshop/internal/service"
	"github.com/skomarov/eshop/internal/transport"
	"github.com/skomarov/eshop/pkg/logging"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	wl, err := h.Svc.GetWishlist(ctx, userID)
	if err != nil {
		return serviceError(c, "get_wishlist", err)
	}

	l.Info("get_wishlist_success")
	return c.JSON(http.StatusOK, wl)
}

func (h *WishlistHTTP) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	var req transport.AddToWishlistRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_wishlist_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	wl, err := h.Svc.AddToWishlist(ctx, userID, productID)
	if err != nil {
		return serviceError(c, "add_to_wishlist", err)
	}

	l.Info("add_to_wishlist_success")
	return c.JSON(http.StatusCreated, wl)
}

func (h *WishlistHTTP) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	wl, err := h.Svc.RemoveFromWishlist(ctx, userID, productID)
	if err != nil {
		return serviceError(c, "remove_from_wishlist", err)
	}

	l.Info("remove_from_wishlist_success")
	return c.JSON(http.StatusOK, wl)
}

func (h *WishlistHTTP) ClearWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.clear")

	userID, err := GetID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearWishlist(ctx, userID); err != nil {
		return serviceError(c, "clear_wishlist", err)
	}

	l.Info("clear_wishlist_success")
	return c.JSON(http.StatusOK, map[string]string{"message": "wishlist cleared successfully"})
}
