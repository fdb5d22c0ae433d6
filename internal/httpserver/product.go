package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/skomarov/eshop/internal/models"
	"github.com/skomarov/eshop/internal/mykafka"
	"github.com/skomarov/eshop/internal/search"
	"github.com/skomarov/eshop/internal/service"
	"github.com/skomarov/eshop/internal/transport"
	"github.com/skomarov/eshop/internal/util"
	"github.com/skomarov/eshop/pkg/logging"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "invalid id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return serviceError(c, "get_product", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		return serviceError(c, "get_products", err)
	}

	return c.JSON(http.StatusOK, pageResponse(items, page, offset, limit, total))
}

// SearchProducts queries elasticsearch when wired, and falls back to the
// database otherwise.
func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var (
		total int64
		items []models.Product
		err   error
	)
	if h.ES != nil {
		total, items, err = search.Search(ctx, h.ES, search.ProductIndex, q, offset, limit)
	} else {
		total, items, err = h.Svc.SearchProducts(ctx, q, offset, limit)
	}
	if err != nil {
		l.Error("search_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, pageResponse(items, page, offset, limit, total))
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(c, "create_product", err)
	}

	h.indexProduct(c, prod)
	publishEvent(c, h.Producer, "product_events", map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		return serviceError(c, "patch_product", err)
	}

	h.indexProduct(c, prod)
	publishEvent(c, h.Producer, "product_events", map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return serviceError(c, "delete_product", err)
	}

	if h.ES != nil {
		if err := search.DeleteProduct(ctx, h.ES, id.String()); err != nil {
			l.Error("es_delete_error", "error", err)
		}
	}
	publishEvent(c, h.Producer, "product_events", map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) indexProduct(c echo.Context, prod *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, prod); err != nil {
		logging.FromContext(c.Request().Context()).Error("es_index_error", "product_id", prod.ID, "error", err)
	}
}

func pageResponse(items []models.Product, page, offset, limit int, total int64) map[string]any {
	return map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	}
}
