package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/pkg/apperr"
)

// RegisterRevocationRoutes adds POST /auth/logout, which revokes the bearer
// token the request was made with.
func RegisterRevocationRoutes(e *echo.Echo, store RevocationStore) {
	e.POST("/auth/logout", handleLogout(store))
}

func handleLogout(store RevocationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id, ok := IdentityFromContext(ctx)
		if !ok {
			return apperr.Unauthenticated(msgNoToken)
		}
		if id.TokenID == "" {
			return apperr.BadRequest("Token cannot be revoked.")
		}
		if err := store.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
			return apperr.Internal("logout", err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
}
