package clinical

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

// RegisterRoutes mounts the medical record endpoints under /records.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	write := auth.Require(auth.PermRecordWrite)

	g.POST("/medical-records", h.CreateMedicalRecord, write)
	g.GET("/medical-records", h.ListMedicalRecords)
	g.GET("/medical-records/:id", h.GetMedicalRecord)
	g.PUT("/medical-records/:id", h.UpdateMedicalRecord, write)
	g.DELETE("/medical-records/:id", h.DeleteMedicalRecord, write)
}

func (h *Handler) CreateMedicalRecord(c echo.Context) error {
	var req CreateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	m, err := h.svc.CreateMedicalRecord(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return httpx.Created(c, "Medical record created successfully", "medicalRecord", m)
}

func (h *Handler) ListMedicalRecords(c echo.Context) error {
	var f RecordFilter
	var err error
	if f.PatientID, err = httpx.QueryInt64(c, "patient_id"); err != nil {
		return err
	}
	if f.DoctorID, err = httpx.QueryInt64(c, "doctor_id"); err != nil {
		return err
	}
	if f.Day, err = httpx.QueryDate(c, "record_date"); err != nil {
		return err
	}

	list, err := h.svc.ListMedicalRecords(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetMedicalRecord(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	m, err := h.svc.GetMedicalRecord(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) UpdateMedicalRecord(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var e Entry
	if err := httpx.Bind(c, &e); err != nil {
		return err
	}
	m, err := h.svc.UpdateMedicalRecord(c.Request().Context(), id, &e)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Medical record updated successfully", "medicalRecord", m)
}

func (h *Handler) DeleteMedicalRecord(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMedicalRecord(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Medical record deleted successfully", "record_id", id)
}
