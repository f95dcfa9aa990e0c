package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/httpx"
	"github.com/dval/hmis/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterDepartmentRoutes mounts department endpoints under /departments.
func (h *Handler) RegisterDepartmentRoutes(g *echo.Group) {
	write := auth.Require(auth.PermDepartmentWrite)

	g.POST("/create-department", h.CreateDepartment, write)
	g.GET("/view-departments", h.ListDepartments)
	g.GET("/:id", h.GetDepartment)
	g.PUT("/:id", h.UpdateDepartment, write)
	g.DELETE("/:id", h.DeleteDepartment, write)
}

// RegisterStaffRoutes mounts staff endpoints under /staff. /staff/login is
// public.
func (h *Handler) RegisterStaffRoutes(g *echo.Group) {
	write := auth.Require(auth.PermStaffWrite)

	g.POST("/login", h.Login)
	g.POST("/create-staff", h.CreateStaff, write)
	g.GET("/all-staff", h.ListStaff)
	g.GET("/staff/:id", h.GetStaff)
	g.PUT("/staff/:id", h.UpdateStaff, write)
	g.DELETE("/staff/:id", h.DeleteStaff, write)
}

// -- Department Handlers --

func (h *Handler) CreateDepartment(c echo.Context) error {
	var d Department
	if err := httpx.Bind(c, &d); err != nil {
		return err
	}
	if err := h.svc.CreateDepartment(c.Request().Context(), &d); err != nil {
		return err
	}
	return httpx.Created(c, "Department created successfully", "department", d)
}

func (h *Handler) ListDepartments(c echo.Context) error {
	f := DepartmentFilter{Name: httpx.QueryString(c, "department_name")}
	list, err := h.svc.ListDepartments(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetDepartment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDepartment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u DepartmentUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	d, err := h.svc.UpdateDepartment(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Department updated successfully", "department", d)
}

func (h *Handler) DeleteDepartment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDepartment(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Department deleted successfully", "department_id", id)
}

// -- Staff Handlers --

func (h *Handler) CreateStaff(c echo.Context) error {
	var req CreateStaffRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	st, password, err := h.svc.CreateStaff(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedStaff{
		Message:           "Staff member created successfully",
		Staff:             st,
		TemporaryPassword: password,
	})
}

func (h *Handler) ListStaff(c echo.Context) error {
	f := StaffFilter{Role: httpx.QueryString(c, "role")}
	var err error
	if f.DepartmentID, err = httpx.QueryInt64(c, "department_id"); err != nil {
		return err
	}
	list, err := h.svc.ListStaff(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetStaff(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	st, err := h.svc.GetStaff(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u StaffUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	st, err := h.svc.UpdateStaff(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Staff member updated successfully", "staff", st)
}

func (h *Handler) DeleteStaff(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteStaff(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Staff member deleted successfully", "staff_id", id)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	token, err := h.svc.Login(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Login successful", "token": token})
}
