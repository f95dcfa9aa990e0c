package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dval/hmis/pkg/apperr"
)

func gate(t *testing.T, store RevocationStore, header string) (echo.Context, Identity, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen Identity
	mw := Middleware(MiddlewareConfig{Issuer: NewTokenIssuer(testSecret), Revocations: store})
	err := mw(func(c echo.Context) error {
		seen, _ = IdentityFromContext(c.Request().Context())
		return nil
	})(c)
	return c, seen, err
}

func adminToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	tok, err := NewTokenIssuer(testSecret).Issue(Identity{SubjectID: 1, Kind: KindAdmin, Role: RoleAdmin, HospitalID: 7}, ttl)
	require.NoError(t, err)
	return tok
}

func TestMiddleware_MissingHeader(t *testing.T) {
	_, _, err := gate(t, nil, "")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, ae.Status())
	assert.Equal(t, "Access denied. No token provided.", ae.Message)
}

func TestMiddleware_NotBearer(t *testing.T) {
	_, _, err := gate(t, nil, "Basic Zm9vOmJhcg==")
	assert.True(t, apperr.Is(err, apperr.TypeUnauthenticated))
}

func TestMiddleware_InvalidToken(t *testing.T) {
	_, _, err := gate(t, nil, "Bearer garbage")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, ae.Status())
	assert.Equal(t, "Invalid token.", ae.Message)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	_, _, err := gate(t, nil, "Bearer "+adminToken(t, -time.Minute))
	assert.True(t, apperr.Is(err, apperr.TypeForbidden))
}

func TestMiddleware_ValidToken(t *testing.T) {
	c, id, err := gate(t, nil, "Bearer "+adminToken(t, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.SubjectID)
	assert.Equal(t, KindAdmin, id.Kind)
	assert.Equal(t, int64(7), c.Get("jwt_tenant_id"))
}

func TestMiddleware_RevokedToken(t *testing.T) {
	store := NewMemoryRevocationStore(time.Hour)
	defer store.Close()

	tok := adminToken(t, time.Hour)
	claims, err := NewTokenIssuer(testSecret).Verify(tok)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	_, _, err = gate(t, store, "Bearer "+tok)
	assert.True(t, apperr.Is(err, apperr.TypeForbidden))
}

func TestMiddleware_Skipper(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), httptest.NewRecorder())
	c.SetPath("/auth/login")

	called := false
	mw := Middleware(MiddlewareConfig{Issuer: NewTokenIssuer(testSecret), Skipper: Skipper})
	err := mw(func(echo.Context) error { called = true; return nil })(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestSkipper_UnmatchedRoute(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/no-such-route", nil), httptest.NewRecorder())
	assert.True(t, Skipper(c))

	c.SetPath("/api/patients")
	assert.False(t, Skipper(c))
}

func TestIsPublicPath(t *testing.T) {
	assert.True(t, IsPublicPath("/auth/signup"))
	assert.True(t, IsPublicPath("/staff/login"))
	assert.False(t, IsPublicPath("/auth/logout"))
	assert.False(t, IsPublicPath("/api/patients"))
}
