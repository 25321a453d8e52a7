package middleware

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"
)

// RequestID propagates or generates a request ID and logs one line per
// request with method, route, status and latency. Client-supplied IDs
// are kept (trimmed to 128 chars) so traces can span services.
func RequestID(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			startedAt := time.Now()
			id := normalizeRequestID(c.Request().Header.Get(requestIDHeaderName))
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(requestIDContextKey, id)
			c.Response().Header().Set(requestIDHeaderName, id)

			err := next(c)

			log.Info().
				Str("request_id", id).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(startedAt)).
				Str("client_ip", c.RealIP()).
				Msg("request")
			return err
		}
	}
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if len(candidate) > 128 {
		candidate = candidate[:128]
	}
	return candidate
}
