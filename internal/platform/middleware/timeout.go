package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestTimeout sets a deadline on each request context. Handlers run on the
// request goroutine and are expected to honour ctx; an error caused by the
// deadline is reported as 504.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: timeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return echo.NewHTTPError(http.StatusGatewayTimeout, "Request timed out").SetInternal(err)
			}
			return err
		},
	})
}
