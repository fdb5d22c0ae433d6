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

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return serviceError(c, "register", err)
	}

	publishEvent(c, h.Producer, "user_events", map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Login(ctx, req)
	if err != nil {
		return serviceError(c, "login", err)
	}

	l.Info("login_success", "user_id", resp.UserID)
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return serviceError(c, "get_users", err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AuthHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.delete_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		return serviceError(c, "delete_user", err)
	}

	l.Info("delete_user_success", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}
