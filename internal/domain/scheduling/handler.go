package scheduling

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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	write := auth.Require(auth.PermAppointmentWrite)

	g.POST("/appointments", h.CreateAppointment, write)
	g.GET("/all-appointments", h.ListAppointments)
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/:id", h.GetAppointment)
	g.PUT("/appointments/:id", h.UpdateAppointment, write)
	g.PUT("/appointments/:id/check-out", h.CheckOutAppointment, write)
	g.DELETE("/appointments/:id", h.CancelAppointment, write)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req CreateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	a, err := h.svc.CreateAppointment(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return httpx.Created(c, "Appointment created successfully", "appointment", a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	var f AppointmentFilter
	var err error
	if f.DoctorID, err = httpx.QueryInt64(c, "doctor_id"); err != nil {
		return err
	}
	if f.PatientID, err = httpx.QueryInt64(c, "patient_id"); err != nil {
		return err
	}
	if f.Day, err = httpx.QueryDate(c, "appointment_date"); err != nil {
		return err
	}
	f.Status = httpx.QueryString(c, "status")

	list, err := h.svc.ListAppointments(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var req UpdateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	a, err := h.svc.UpdateAppointment(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Appointment updated successfully", "appointment", a)
}

func (h *Handler) CheckOutAppointment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.CheckOutAppointment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Appointment checked out successfully", "appointment", a)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.CancelAppointment(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Appointment canceled successfully", "appointment_id", id)
}
