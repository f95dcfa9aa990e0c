package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/internal/platform/middleware"
)

func newRoutedServer(role string) *echo.Echo {
	h := NewHandler(newTestService())
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/staff/login" {
				return next(c)
			}
			ctx := auth.WithIdentity(c.Request().Context(), auth.Identity{SubjectID: 1, Kind: auth.KindStaff, Role: role, HospitalID: 1})
			c.SetRequest(c.Request().WithContext(db.WithTenant(ctx, 1)))
			return next(c)
		}
	})
	h.RegisterDepartmentRoutes(e.Group("/departments"))
	h.RegisterStaffRoutes(e.Group("/staff"))
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDepartmentRoutes_AdminLifecycle(t *testing.T) {
	e := newRoutedServer(auth.RoleAdmin)

	rec := serve(e, http.MethodPost, "/departments/create-department", `{"department_name":"Cardiology","location":"Block A"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Message    string     `json:"message"`
		Department Department `json:"department"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Department created successfully", created.Message)
	assert.Equal(t, int64(1), created.Department.HospitalID)

	rec = serve(e, http.MethodGet, "/departments/view-departments?department_name=cardio", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Department
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = serve(e, http.MethodPut, "/departments/1", `{"location":"Block B"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"department_name":"Cardiology"`)
	assert.Contains(t, rec.Body.String(), `"location":"Block B"`)

	rec = serve(e, http.MethodDelete, "/departments/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Department deleted successfully","department_id":1}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/departments/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Department not found"}`, rec.Body.String())
}

func TestDepartmentRoutes_NonAdminForbidden(t *testing.T) {
	e := newRoutedServer(auth.RoleNurse)

	rec := serve(e, http.MethodPost, "/departments/create-department", `{"department_name":"Cardiology"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(e, http.MethodPut, "/departments/1", `{"location":"Block B"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(e, http.MethodDelete, "/departments/1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(e, http.MethodGet, "/departments/view-departments", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestDepartmentRoutes_InvalidID(t *testing.T) {
	e := newRoutedServer(auth.RoleAdmin)
	rec := serve(e, http.MethodGet, "/departments/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaffRoutes_CreateAndLogin(t *testing.T) {
	e := newRoutedServer(auth.RoleAdmin)

	rec := serve(e, http.MethodPost, "/staff/create-staff",
		`{"first_name":"Ann","last_name":"Mwangi","email":"ann@example.test","role":"Doctor"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password_hash")

	var created CreatedStaff
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Staff member created successfully", created.Message)
	assert.Len(t, created.TemporaryPassword, auth.TempPasswordLength)

	rec = serve(e, http.MethodPost, "/staff/login",
		`{"email":"ann@example.test","password":"`+created.TemporaryPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "Login successful", login["message"])
	assert.NotEmpty(t, login["token"])

	rec = serve(e, http.MethodPost, "/staff/login", `{"email":"ann@example.test","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid email or password"}`, rec.Body.String())
}

func TestStaffRoutes_DoctorCannotCreateStaff(t *testing.T) {
	e := newRoutedServer(auth.RoleDoctor)
	rec := serve(e, http.MethodPost, "/staff/create-staff",
		`{"first_name":"Ann","last_name":"Mwangi","email":"ann@example.test","role":"Doctor"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(e, http.MethodGet, "/staff/all-staff?department_id=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
