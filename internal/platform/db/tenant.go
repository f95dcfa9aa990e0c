package db

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/pkg/apperr"
)

type contextKey string

const TenantIDKey contextKey = "hospital_id"

// TenantMiddleware resolves the caller's hospital from the verified token
// claims placed on the echo context by the auth middleware. Requests without
// a hospital are rejected; the tenant is never read from headers, query
// strings or bodies.
func TenantMiddleware(skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			hospitalID, ok := c.Get("jwt_tenant_id").(int64)
			if !ok || hospitalID <= 0 {
				return apperr.Forbidden("No hospital associated with this account.")
			}

			ctx := WithTenant(c.Request().Context(), hospitalID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("hospital_id", hospitalID)

			return next(c)
		}
	}
}

// WithTenant attaches the hospital id to ctx.
func WithTenant(ctx context.Context, hospitalID int64) context.Context {
	return context.WithValue(ctx, TenantIDKey, hospitalID)
}

// TenantFromContext retrieves the hospital id from context.
func TenantFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(TenantIDKey).(int64)
	return id, ok && id > 0
}

// RequireTenant is TenantFromContext for service code: a missing tenant is a
// Forbidden application error.
func RequireTenant(ctx context.Context) (int64, error) {
	id, ok := TenantFromContext(ctx)
	if !ok {
		return 0, apperr.Forbidden("No hospital associated with this account.")
	}
	return id, nil
}
