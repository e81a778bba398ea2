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

type CategoryHTTP struct {
	Svc      *service.CatalogService
	Assets   *storage.Store
	Producer *mykafka.Producer
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_category_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id format")
	}

	category, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_category_failed", "status", 404, "reason", "category not found")
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("get_category_failed", "status", 500, "reason", "cannot get category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get category")
	}

	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories")

	page, offset, limit := pagination(c)

	total, items, err := h.Svc.GetCategories(ctx, offset, limit)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "reason", "cannot list categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}

	return listResponse(c, page, limit, offset, total, items)
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	imageRef := ""
	if fh, err := formImage(c, "image"); err != nil {
		l.Warn("category_create_failed", "status", 400, "reason", "invalid upload", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	} else if fh != nil {
		if imageRef, err = saveUpload(c, h.Assets, storage.KindCategories, fh); err != nil {
			return err
		}
	}

	category, err := h.Svc.CreateCategory(ctx, req, imageRef)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("category_create_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("category_create_failed", "status", 500, "reason", "cannot create category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
	}

	publish(c, h.Producer, category.ID.String(), map[string]any{
		"type":       "category_created",
		"categoryID": category.ID,
		"name":       category.Name,
	})

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("category_update_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id format")
	}

	var req transport.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	imageRef := ""
	if fh, err := formImage(c, "image"); err != nil {
		l.Warn("category_update_failed", "status", 400, "reason", "invalid upload", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	} else if fh != nil {
		if imageRef, err = saveUpload(c, h.Assets, storage.KindCategories, fh); err != nil {
			return err
		}
	}

	category, err := h.Svc.UpdateCategory(ctx, id, req, imageRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("category_update_failed", "status", 404, "reason", "category not found")
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("category_update_failed", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("category_update_failed", "status", 500, "reason", "cannot update category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
	}

	publish(c, h.Producer, category.ID.String(), map[string]any{
		"type":       "category_updated",
		"categoryID": category.ID,
		"name":       category.Name,
	})

	l.Info("update_category_success", "category_id", category.ID)
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("category_delete_failed", "status", 400, "reason", "invalid id format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id format")
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("category_delete_failed", "status", 404, "reason", "category not found")
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("category_delete_failed", "status", 500, "reason", "cannot delete category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}

	publish(c, h.Producer, id.String(), map[string]any{
		"type":       "category_deleted",
		"categoryID": id,
	})

	l.Info("delete_category_success", "category_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "category and associated image deleted successfully"})
}
