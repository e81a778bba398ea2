package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/labstack/echo/v4"

	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/service/search"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	_, offset, limit := pagination(c)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, offset, limit)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "search error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
