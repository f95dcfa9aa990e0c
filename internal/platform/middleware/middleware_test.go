package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dval/hmis/pkg/apperr"
)

func TestRequestID_GeneratesNew(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	var rid string
	err := RequestID()(func(c echo.Context) error {
		rid, _ = c.Get("request_id").(string)
		return nil
	})(c)

	require.NoError(t, err)
	assert.Len(t, rid, 26)
	assert.Equal(t, rid, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_PreservesExisting(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, RequestID()(func(echo.Context) error { return nil })(c))
	assert.Equal(t, "my-custom-id", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReplacesInvalid(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	rec := httptest.NewRecorder()

	require.NoError(t, RequestID()(func(echo.Context) error { return nil })(e.NewContext(req, rec)))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 26)
}

func TestNewRequestID_Monotonic(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.Less(t, a, b)
}

func newErrorEcho(buf *bytes.Buffer) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zerolog.New(buf))
	return e
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestErrorHandler_AppError(t *testing.T) {
	var buf bytes.Buffer
	e := newErrorEcho(&buf)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	e.HTTPErrorHandler(apperr.Conflict("Patient already exists"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Patient already exists", decodeMessage(t, rec))
	assert.Empty(t, buf.String())
}

func TestErrorHandler_InternalHidesCause(t *testing.T) {
	var buf bytes.Buffer
	e := newErrorEcho(&buf)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	e.HTTPErrorHandler(apperr.Internal("list patients", errors.New("pq: relation missing")), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", decodeMessage(t, rec))
	assert.Contains(t, buf.String(), "relation missing")
}

func TestErrorHandler_PlainError(t *testing.T) {
	var buf bytes.Buffer
	e := newErrorEcho(&buf)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	e.HTTPErrorHandler(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", decodeMessage(t, rec))
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	var buf bytes.Buffer
	e := newErrorEcho(&buf)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	e.HTTPErrorHandler(echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests"), c)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests", decodeMessage(t, rec))
}

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	e := newErrorEcho(&buf)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/patients", nil), rec)
	c.Set("request_id", "rid-1")

	err := Logger(zerolog.New(&buf))(func(c echo.Context) error {
		return apperr.NotFound("Patient not found")
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"request_id":"rid-1"`)
	assert.Contains(t, buf.String(), `"status":404`)
}

func TestRecovery_CatchesPanic(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := Recovery(zerolog.New(&buf))(func(echo.Context) error {
		panic("test panic")
	})(c)

	assert.True(t, apperr.Is(err, apperr.TypeInternal))
	assert.Contains(t, buf.String(), "test panic")
}

func TestRecovery_PassesThrough(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := Recovery(zerolog.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Exceeded(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	var last error
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = h(e.NewContext(req, httptest.NewRecorder()))
	}

	var he *echo.HTTPError
	require.ErrorAs(t, last, &he)
	assert.Equal(t, http.StatusTooManyRequests, he.Code)
}

func TestRateLimit_PerClient(t *testing.T) {
	e := echo.New()
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})(func(c echo.Context) error { return nil })

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		assert.NoError(t, h(e.NewContext(req, httptest.NewRecorder())))
	}
}

func TestLimiterStore_Sweep(t *testing.T) {
	s := newLimiterStore(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1, IdleTTL: time.Minute})
	now := time.Now()
	s.get("a", now.Add(-2*time.Minute))
	s.get("b", now)
	s.sweep(now)

	assert.Len(t, s.clients, 1)
	assert.Contains(t, s.clients, "b")
}

func TestRequestTimeout(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequestTimeout(10 * time.Millisecond)(func(c echo.Context) error {
		<-c.Request().Context().Done()
		return c.Request().Context().Err()
	})(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusGatewayTimeout, he.Code)
}

func TestRequestTimeout_PassesOtherErrors(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequestTimeout(time.Second)(func(c echo.Context) error {
		_, ok := c.Request().Context().Deadline()
		assert.True(t, ok)
		return apperr.NotFound("Patient not found")
	})(c)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.TypeNotFound, ae.Type)
}

func TestRecovery_CatchesPanicBehindTimeout(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zerolog.Nop())
	e.Use(Recovery(zerolog.Nop()))
	e.Use(RequestTimeout(30 * time.Second))
	e.GET("/boom", func(c echo.Context) error {
		var m map[string]int
		m["x"] = 1
		return nil
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, rec.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SecurityHeaders()(func(echo.Context) error { return nil })(c))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestMetrics_RecordsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/patients/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/patients/12", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues(http.MethodGet, "/api/patients/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}
