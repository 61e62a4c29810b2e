package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

// RequestTimeout puts a deadline on each request context. The handler runs
// on the request goroutine; when it returns an error caused by the deadline
// and nothing was written yet, the client gets 504. A handler that finishes
// its work after the deadline still answers with its own response.
// WebSocket upgrades (paths ending in /ws) are long-lived and skipped.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	if timeout <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: timeout,
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Request().URL.Path, "/ws")
		},
		ErrorHandler: timeoutErrorHandler,
	})
}

func timeoutErrorHandler(err error, c echo.Context) error {
	if !errors.Is(err, context.DeadlineExceeded) || c.Response().Committed {
		return err
	}
	return c.JSON(http.StatusGatewayTimeout, apperr.Message{Message: "Request timed out."})
}
