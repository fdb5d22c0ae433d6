package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skomarov/eshop/internal/mykafka"
	"github.com/skomarov/eshop/internal/service"
	"github.com/skomarov/eshop/pkg/logging"
)

// GetID reads the authenticated user id placed into the context by the auth
// middleware. Identity is always threaded explicitly from here on, never
// read from ambient state deeper in the stack.
func GetID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return userID, nil
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrCartEmpty):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// serviceError logs the classified failure and converts it to an HTTP error.
// Storage failures keep their diagnostics in the log, never in the body.
func serviceError(c echo.Context, handler string, err error) error {
	status := httpStatus(err)
	l := logging.FromContext(c.Request().Context()).With("handler", handler)

	if status >= 500 {
		l.Error(handler+"_error", "status", status, "error", err)
		return echo.NewHTTPError(status, "internal error")
	}
	l.Warn(handler+"_error", "status", status, "error", err)
	return echo.NewHTTPError(status, err.Error())
}

// publishEvent is fire-and-forget: event delivery problems are logged, never
// surfaced to the client. A nil producer disables publishing.
func publishEvent(c echo.Context, p *mykafka.Producer, topic string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
