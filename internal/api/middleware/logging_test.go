package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/catalogo/service-catalog/pkg/logger"
)

func TestContextLogger_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(echomiddleware.RequestID())
	e.Use(ContextLogger(zerolog.New(&buf)))
	e.GET("/", func(c echo.Context) error {
		logger.Ctx(c.Request().Context()).Info().Msg("inside handler")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Fatalf("expected request id in log, got %q", buf.String())
	}
}

func TestContextLogger_GeneratedRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(echomiddleware.RequestID())
	e.Use(ContextLogger(zerolog.New(&buf)))
	e.GET("/", func(c echo.Context) error {
		logger.Ctx(c.Request().Context()).Info().Msg("inside handler")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(echo.HeaderXRequestID)
	if id == "" {
		t.Fatalf("expected a generated request id")
	}
	if !strings.Contains(buf.String(), `"request_id":"`+id+`"`) {
		t.Fatalf("expected generated id %q in log, got %q", id, buf.String())
	}
}
