package encounter

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

// RegisterRoutes mounts the consultation endpoints under /consultations.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	write := auth.Require(auth.PermConsultationWrite)

	g.POST("/new-consultation", h.CreateConsultation, write)
	g.GET("/all-consultations", h.ListConsultations)
	g.GET("/:id", h.GetConsultation)
	g.PUT("/:id", h.UpdateConsultation, write)
	g.DELETE("/:id", h.DeleteConsultation, write)
}

func (h *Handler) CreateConsultation(c echo.Context) error {
	var req CreateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	consultation, err := h.svc.CreateConsultation(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return httpx.Created(c, "Consultation created successfully", "consultation", consultation)
}

func (h *Handler) ListConsultations(c echo.Context) error {
	var f ConsultationFilter
	var err error
	if f.PatientID, err = httpx.QueryInt64(c, "patient_id"); err != nil {
		return err
	}
	if f.DoctorID, err = httpx.QueryInt64(c, "doctor_id"); err != nil {
		return err
	}
	f.Status = httpx.QueryString(c, "status")

	list, err := h.svc.ListConsultations(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetConsultation(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	consultation, err := h.svc.GetConsultation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultation)
}

func (h *Handler) UpdateConsultation(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u ConsultationUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	consultation, err := h.svc.UpdateConsultation(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Consultation updated successfully", "consultation", consultation)
}

func (h *Handler) DeleteConsultation(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteConsultation(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Consultation deleted successfully", "consultation_id", id)
}
