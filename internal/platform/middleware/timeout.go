package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/wellness/wellness/internal/platform/apierr"
)

// RequestTimeout sets a deadline on each request context. The handler runs
// on the request goroutine, so an upstream Recovery still sees its panics;
// a handler that gives up with context.DeadlineExceeded gets a 504.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: timeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return apierr.Wrap(http.StatusGatewayTimeout, apierr.CodeTimeout,
					"request processing exceeded the allowed time limit", err)
			}
			return err
		},
	})
}
