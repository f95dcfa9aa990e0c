package billing

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

// RegisterRoutes mounts the billing endpoints under /bill.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	write := auth.Require(auth.PermBillingWrite)

	g.POST("/billing", h.CreateBill, write)
	g.GET("/billing", h.ListBills)
	g.GET("/billing/:id", h.GetBill)
	g.PUT("/billing/:id", h.UpdateBill, write)
	g.DELETE("/billing/:id", h.DeleteBill, write)
}

func (h *Handler) CreateBill(c echo.Context) error {
	var req CreateRequest
	if err := httpx.Bind(c, &req); err != nil {
		return err
	}
	b, err := h.svc.CreateBill(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return httpx.Created(c, "Bill created successfully", "bill", b)
}

func (h *Handler) ListBills(c echo.Context) error {
	var f BillFilter
	var err error
	if f.PatientID, err = httpx.QueryInt64(c, "patient_id"); err != nil {
		return err
	}
	if f.DoctorID, err = httpx.QueryInt64(c, "doctor_id"); err != nil {
		return err
	}
	if f.Day, err = httpx.QueryDate(c, "billing_date"); err != nil {
		return err
	}
	f.Status = httpx.QueryString(c, "status")

	list, err := h.svc.ListBills(c.Request().Context(), f, pagination.FromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	b, err := h.svc.GetBill(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateBill(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	var u BillUpdate
	if err := httpx.Bind(c, &u); err != nil {
		return err
	}
	b, err := h.svc.UpdateBill(c.Request().Context(), id, &u)
	if err != nil {
		return err
	}
	return httpx.OK(c, "Bill status updated successfully", "bill", b)
}

func (h *Handler) DeleteBill(c echo.Context) error {
	id, err := httpx.ParamID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBill(c.Request().Context(), id); err != nil {
		return err
	}
	return httpx.Deleted(c, "Bill deleted successfully", "billing_id", id)
}
