package medication

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

// RegisterRoutes mounts the prescription endpoints under /prescriptions.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	write := auth.Require(auth.PermPrescriptionWrite)

	g.POST("/new-prescription", h.CreatePrescription, write)
	g.GET("/all-prescriptions", h.ListPrescriptions)
	g.GET("/prescriptions/:id", h.GetPrescription)
	g.PUT("/prescriptions/:id", h.UpdatePrescription, write)
	g.DELETE("/prescriptions/:id", h.DeletePrescription, write)
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	var req CreateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.CreatePrescription(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return httpx.Created(c, "Prescription created successfully", "prescription", p)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	var f PrescriptionFilter
	var err error
	if f.PatientID, err = httpx.QueryInt64(c, "patient_id"); err != nil {
		return err
	}
	if f.DoctorID, err = httpx.QueryInt64(c, "doctor_id"); err != nil {
		return err
	}
	if f.Day, err = httpx.QueryDate(c, "prescribed_date"); err != nil {
		return err
	}
	f.Status = httpx.QueryString(c, "status")

	list, err := h.svc.ListPrescriptions(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPrescription(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPrescription(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u PrescriptionUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	p, err := h.svc.UpdatePrescription(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Prescription updated successfully", "prescription", p)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePrescription(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Prescription deleted successfully", "prescription_id", id)
}
