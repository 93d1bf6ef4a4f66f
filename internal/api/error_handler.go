package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catalogo/service-catalog/internal/api/handler"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    bool   `json:"error"`
	Mensaje  string `json:"mensaje"`
	Detalles string `json:"detalles,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors, exposing their cause in "detalles" only when
//     exposeDetails is set.
//   - Renders a consistent JSON envelope: {"error": true, "mensaje": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if !exposeDetails {
			resp.Detalles = ""
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (router 404/405, rate limiter, body limit, ...).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code >= http.StatusInternalServerError {
			logUnexpected(log, c, err)
		}
		return he.Code, errorResponse{Error: true, Mensaje: msg}
	}

	if code, ok := handler.StatusFor(err); ok {
		return code, errorResponse{Error: true, Mensaje: handler.ErrorMessage(err)}
	}

	logUnexpected(log, c, err)
	return http.StatusInternalServerError, errorResponse{
		Error:    true,
		Mensaje:  "internal server error",
		Detalles: err.Error(),
	}
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}
