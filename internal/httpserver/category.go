package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skomarov/eshop/internal/service"
	"github.com/skomarov/eshop/internal/transport"
	"github.com/skomarov/eshop/pkg/logging"
)

type CategoryHTTP struct {
	Svc *service.CatalogService
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return serviceError(c, "get_categories", err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return serviceError(c, "create_category", err)
	}

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category ID")
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return serviceError(c, "delete_category", err)
	}

	l.Info("delete_category_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHTTP) GetSubcategories(c echo.Context) error {
	ctx := c.Request().Context()

	subcategories, err := h.Svc.ListSubcategories(ctx)
	if err != nil {
		return serviceError(c, "get_subcategories", err)
	}

	return c.JSON(http.StatusOK, subcategories)
}

func (h *CategoryHTTP) CreateSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.create")

	var req transport.CreateSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_subcategory_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	subcategory, err := h.Svc.CreateSubcategory(ctx, req)
	if err != nil {
		return serviceError(c, "create_subcategory", err)
	}

	l.Info("create_subcategory_success", "subcategory_id", subcategory.ID)
	return c.JSON(http.StatusCreated, subcategory)
}

func (h *CategoryHTTP) DeleteSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid subcategory ID")
	}

	if err := h.Svc.DeleteSubcategory(ctx, id); err != nil {
		return serviceError(c, "delete_subcategory", err)
	}

	l.Info("delete_subcategory_success", "subcategory_id", id)
	return c.NoContent(http.StatusNoContent)
}
