package identity

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

// RegisterRoutes mounts the patient endpoints on the /api group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/register-patient", h.RegisterPatient, auth.Require(auth.PermPatientWrite))
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient, auth.Require(auth.PermPatientWrite))
	api.DELETE("/patients/:id", h.DeletePatient, auth.Require(auth.PermPatientDelete))
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var p Patient
	if err := httpx.Bind(c, &p); err != nil {
		return err
	}
	if err := h.svc.RegisterPatient(c.Request().Context(), &p); err != nil {
		return err
	}
	return httpx.Created(c, "Patient has been registered successfully", "patient", p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	age, err := httpx.QueryInt(c, "age")
	if err != nil {
		return err
	}
	f := PatientFilter{
		Name:   httpx.QueryString(c, "name"),
		Gender: httpx.QueryString(c, "gender"),
		Age:    age,
	}
	patients, err := h.svc.ListPatients(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u PatientUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	p, err := h.svc.UpdatePatient(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Patient updated successfully", "patient", p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Patient deleted successfully", "patient_id", id)
}
