package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const apiKeyHeader = "X-API-Key"

// apiKeySkipPaths are served without authentication: the operational
// liveness probe, the metrics scrape, and the public docs pages. Everything
// the API proper exposes, /health included, requires the key.
var apiKeySkipPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
	"/":        {},
	"/privacy": {},
}

// APIKey returns Echo middleware that requires the configured key in the
// X-API-Key header. An empty configured key disables the check entirely.
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return next(c)
			}

			if _, skip := apiKeySkipPaths[c.Request().URL.Path]; skip {
				return next(c)
			}

			provided := c.Request().Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid or missing API key",
				})
			}

			return next(c)
		}
	}
}
