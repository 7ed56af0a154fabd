package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"backoffice/core/router"

	"github.com/golang-jwt/jwt/v5"
)

// Auth resolves the tenant and acting user from a bearer token and stores
// them on the request context as "tenant_id" and "user_id". Services treat
// a zero id as unresolved; this middleware is the only place token handling
// lives.
//
// An X-Tenant-Id header may narrow the tenant for tokens that carry access
// to several, but it can never widen it: the header is honored only when it
// matches the token's tenant claim or the token has no tenant claim at all.
func Auth(secret string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			header := c.Request.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "Missing bearer token"})
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "Invalid token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "Invalid token claims"})
			}

			tenantID := claimUint(claims, "tenant_id")
			userID := claimUint(claims, "user_id")

			if headerTenant := c.Request.Header.Get("X-Tenant-Id"); headerTenant != "" {
				if requested, err := strconv.ParseUint(headerTenant, 10, 64); err == nil {
					if tenantID == 0 || tenantID == uint(requested) {
						tenantID = uint(requested)
					}
				}
			}

			c.Set("tenant_id", tenantID)
			c.Set("user_id", userID)
			return next(c)
		}
	}
}

func claimUint(claims jwt.MapClaims, key string) uint {
	switch v := claims[key].(type) {
	case float64:
		return uint(v)
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return uint(n)
		}
	}
	return 0
}
