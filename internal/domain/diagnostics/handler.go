package diagnostics

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

// RegisterRoutes mounts the lab test endpoints under /lab.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	write := auth.Require(auth.PermLabTestWrite)

	g.POST("/lab-tests", h.RequestLabTest, write)
	g.GET("/lab-tests", h.ListLabTests)
	g.GET("/lab-tests/:id", h.GetLabTest)
	g.PUT("/lab-tests/:id", h.UpdateLabTest, write)
	g.DELETE("/lab-tests/:id", h.DeleteLabTest, write)
}

func (h *Handler) RequestLabTest(c echo.Context) error {
	var req CreateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	t, err := h.svc.RequestLabTest(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return httpx.Created(c, "Lab test requested successfully", "labTest", t)
}

func (h *Handler) ListLabTests(c echo.Context) error {
	var f LabTestFilter
	var err error
	if f.PatientID, err = httpx.QueryInt64(c, "patient_id"); err != nil {
		return err
	}
	if f.RequestedBy, err = httpx.QueryInt64(c, "requested_by"); err != nil {
		return err
	}
	if f.Day, err = httpx.QueryDate(c, "test_date"); err != nil {
		return err
	}
	f.Status = httpx.QueryString(c, "status")

	list, err := h.svc.ListLabTests(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetLabTest(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetLabTest(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateLabTest(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u LabTestUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	t, err := h.svc.UpdateLabTest(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Lab test updated successfully", "labTest", t)
}

func (h *Handler) DeleteLabTest(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteLabTest(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Lab test deleted successfully", "test_id", id)
}
