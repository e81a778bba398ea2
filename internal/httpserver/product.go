package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/mykafka"
	"github.com/ikhfad/sporton-backend/internal/service"
	"github.com/ikhfad/sporton-backend/internal/storage"
	"github.com/ikhfad/sporton-backend/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Assets   *storage.Store
	Producer *mykafka.Producer
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id format")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page, offset, limit := pagination(c)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return listResponse(c, page, limit, offset, total, items)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	imageRef := ""
	if fh, err := formImage(c, "image"); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid upload", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	} else if fh != nil {
		if imageRef, err = saveUpload(c, h.Assets, storage.KindProducts, fh); err != nil {
			return err
		}
	}

	product, err := h.Svc.CreateProduct(ctx, req, imageRef)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_create_failed", "status", 500, "reason", "cannot create product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	publish(c, h.Producer, product.ID.String(), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id format")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	imageRef := ""
	if fh, err := formImage(c, "image"); err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid upload", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	} else if fh != nil {
		if imageRef, err = saveUpload(c, h.Assets, storage.KindProducts, fh); err != nil {
			return err
		}
	}

	product, err := h.Svc.UpdateProduct(ctx, id, req, imageRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_update_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_update_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_update_failed", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	publish(c, h.Producer, product.ID.String(), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id format")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_delete_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	publish(c, h.Producer, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "product and associated image deleted successfully"})
}
