package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/pkg/apperr"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
)

// MiddlewareConfig wires the bearer-token gate.
type MiddlewareConfig struct {
	Issuer      *TokenIssuer
	Revocations RevocationStore
	Skipper     func(echo.Context) bool
}

// Middleware rejects requests without a bearer token (401) and requests whose
// token is invalid, expired or revoked (403). Verified callers get an
// Identity on the request context and the tenant hint for db.TenantMiddleware.
func Middleware(cfg MiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			tokenStr, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return apperr.Unauthenticated(msgNoToken)
			}

			claims, err := cfg.Issuer.Verify(tokenStr)
			if err != nil {
				return apperr.Forbidden(msgInvalidToken)
			}

			ctx := c.Request().Context()
			if cfg.Revocations != nil && claims.ID != "" {
				revoked, err := cfg.Revocations.IsRevoked(ctx, claims.ID)
				if err != nil {
					return apperr.Internal("check token revocation", err)
				}
				if revoked {
					return apperr.Forbidden(msgInvalidToken)
				}
			}

			id := claims.Identity()
			c.Set("jwt_tenant_id", id.HospitalID)
			c.SetRequest(c.Request().WithContext(WithIdentity(ctx, id)))

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
