package middleware

import (
	"net/http"
	"runtime/debug"

	"backoffice/core/logger"
	"backoffice/core/router"

	"github.com/google/uuid"
)

// Recovery converts panics into 500 responses instead of killing the server
func Recovery(log logger.Logger) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered",
						logger.Any("panic", r),
						logger.String("path", c.Request.URL.Path),
						logger.String("stack", string(debug.Stack())))
					if !c.Writer.Written() {
						err = c.JSON(http.StatusInternalServerError, map[string]any{
							"error": "Internal server error",
						})
					}
				}
			}()
			return next(c)
		}
	}
}

// RequestID assigns each request a unique id for log correlation
func RequestID() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			requestID := c.Request.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Set("request_id", requestID)
			c.Writer.Header().Set("X-Request-Id", requestID)
			return next(c)
		}
	}
}

// CORS handles cross-origin requests for the configured origins
func CORS(allowedOrigins []string) router.MiddlewareFunc {
	allowAll := false
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		originSet[origin] = true
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			origin := c.Request.Header.Get("Origin")
			if origin != "" && (allowAll || originSet[origin]) {
				header := c.Writer.Header()
				if allowAll {
					header.Set("Access-Control-Allow-Origin", "*")
				} else {
					header.Set("Access-Control-Allow-Origin", origin)
				}
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id, X-Tenant-Id")
			}

			if c.Request.Method == http.MethodOptions {
				c.Writer.WriteHeader(http.StatusNoContent)
				return nil
			}
			return next(c)
		}
	}
}
