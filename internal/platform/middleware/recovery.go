package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

const recoveryStackSize = 4 << 10

// Recovery turns a handler panic into a 500 returned up the chain, so the
// request logger still records the failed request. The panic is logged with
// the request id, route and the panicking goroutine's stack.
func Recovery(logger zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		StackSize:           recoveryStackSize,
		DisableStackAll:     true,
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error().
				Err(err).
				Str("request_id", RequestIDFrom(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Bytes("stack", stack).
				Msg("handler panicked")
			return echo.NewHTTPError(http.StatusInternalServerError, apperr.Message{Message: "Internal server error."}).SetInternal(err)
		},
	})
}
