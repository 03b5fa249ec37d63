package middleware

import (
	"github.com/labstack/echo/v4"

	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
)

// RateLimit spends one token per request from the client's bucket for
// scope. Requests without a client fall back to the remote address.
// Use it behind RequireUser, where a client id cannot be minted for free.
func RateLimit(l *ratelimit.Limiter, scope string) echo.MiddlewareFunc {
	return limitBy(l, scope, func(c echo.Context) string {
		if id := ClientID(c); id != "" {
			return id
		}
		return c.RealIP()
	})
}

// RateLimitByIP buckets on the remote address. Anonymous routes use it
// since dropping the client cookie yields a new client id on every request.
func RateLimitByIP(l *ratelimit.Limiter, scope string) echo.MiddlewareFunc {
	return limitBy(l, scope, func(c echo.Context) string { return c.RealIP() })
}

func limitBy(l *ratelimit.Limiter, scope string, key func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(scope + ":" + key(c)) {
				return xhttp.AppErrorResponse(c, usecase.ErrRateLimited())
			}
			return next(c)
		}
	}
}
