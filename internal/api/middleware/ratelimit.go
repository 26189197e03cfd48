package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ashaconnect/payout-system/internal/api/metrics"
)

// AttemptLimiter reports whether the caller identified by key may make
// another attempt.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginRateLimit throttles login attempts per client IP. Fails open when the
// limiter backend is unreachable: an outage must not lock every worker out.
func LoginRateLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.LoginThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}

			return next(c)
		}
	}
}
