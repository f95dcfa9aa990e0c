package hospital

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterAuthRoutes mounts the public signup and login endpoints under /auth.
func (h *Handler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
}

// RegisterRoutes mounts hospital lookups under /api.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/hospitals", h.ListHospitals)
	g.GET("/hospital/:id", h.GetHospital)
	g.PUT("/hospital/:id", h.UpdateHospital, auth.Require(auth.PermHospitalWrite))
}

func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Signup(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
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

func (h *Handler) GetHospital(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	hosp, err := h.svc.GetHospital(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hosp)
}

func (h *Handler) ListHospitals(c echo.Context) error {
	list, err := h.svc.ListHospitals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateHospital(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u HospitalUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	hosp, err := h.svc.UpdateHospital(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Hospital updated successfully", "hospital", hosp)
}
