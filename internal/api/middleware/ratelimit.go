package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Limiter gates requests per source address.
type Limiter interface {
	Allow(ctx context.Context, addr string) bool
}

// RateLimit rejects requests whose source address exhausted the limiter's
// window. A nil limiter disables throttling, which is how the service runs
// when Redis is not configured.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}
			if !limiter.Allow(c.Request().Context(), c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
			}
			return next(c)
		}
	}
}
