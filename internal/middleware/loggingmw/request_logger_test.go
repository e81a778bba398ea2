package loggingmw

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedEcho(buf *bytes.Buffer) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	e := echo.New()
	e.Use(middleware.RequestID(), RequestLogger(logger))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogger_GeneratedRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	rid := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, rid)

	entry := lastLogLine(t, &buf)
	assert.Equal(t, rid, entry["request_id"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestRequestLogger_ClientRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "client-supplied-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id", rec.Header().Get(echo.HeaderXRequestID))

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "client-supplied-id", entry["request_id"])
}
