package httpserver

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/mykafka"
	"github.com/ikhfad/sporton-backend/internal/storage"
	"github.com/ikhfad/sporton-backend/internal/util"
)

func publish(c echo.Context, producer *mykafka.Producer, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func pagination(c echo.Context) (page, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit = util.Calculate(page, size)
	return page, offset, limit
}

func listResponse(c echo.Context, page, limit, offset int, total int64, items any) error {
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// formImage pulls the optional upload out of a multipart form. A request
// without the field is fine; anything else wrong with the form is not.
func formImage(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}

// saveUpload stores the file and maps an allowlist/size rejection to 400.
func saveUpload(c echo.Context, store *storage.Store, kind string, fh *multipart.FileHeader) (string, error) {
	ref, err := store.Save(c.Request().Context(), kind, fh)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFile) {
			return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return "", echo.NewHTTPError(http.StatusInternalServerError, "cannot store uploaded file")
	}
	return ref, nil
}
