package billing

import (
	"context"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const (
	msgBillNotFound = "Bill not found"
	msgAmountRange  = "amount_due must be between 0.01 and 9999999999.99"

	// amount_due is NUMERIC(12,2).
	minAmountDue = 0.01
	maxAmountDue = 9999999999.99
)

func validAmount(a float64) bool {
	return a >= minAmountDue && a <= maxAmountDue
}

type Service struct {
	bills BillRepository
}

func NewService(bills BillRepository) *Service {
	return &Service{bills: bills}
}

// CreateBill issues a Pending bill. amount_due must fit the stored precision
// and be at least one cent.
func (s *Service) CreateBill(ctx context.Context, req *CreateRequest) (*Bill, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.PatientID <= 0 || req.DoctorID <= 0 || req.ServiceID <= 0 || validate.Blank(req.ServiceType) {
		return nil, apperr.BadRequest("Missing required fields")
	}
	if !validAmount(req.AmountDue) {
		return nil, apperr.BadRequest(msgAmountRange)
	}

	b := &Bill{
		HospitalID:  hospitalID,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ServiceType: req.ServiceType,
		ServiceID:   req.ServiceID,
		AmountDue:   req.AmountDue,
		Status:      StatusPending,
	}
	if err := s.bills.Create(ctx, b); err != nil {
		return nil, db.Translate(err, msgBillNotFound, "create bill")
	}
	return b, nil
}

func (s *Service) GetBill(ctx context.Context, id int64) (*Bill, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.bills.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgBillNotFound, "get bill")
	}
	return b, nil
}

func (s *Service) ListBills(ctx context.Context, f BillFilter, page pagination.Params) ([]*Bill, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.bills.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list bills", err)
	}
	if list == nil {
		list = []*Bill{}
	}
	return list, nil
}

func (s *Service) UpdateBill(ctx context.Context, id int64, u *BillUpdate) (*Bill, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.Status) || validate.BlankPtr(u.ServiceType) {
		return nil, apperr.BadRequest("status and service_type cannot be empty")
	}
	if u.AmountDue != nil && !validAmount(*u.AmountDue) {
		return nil, apperr.BadRequest(msgAmountRange)
	}
	b, err := s.bills.Update(ctx, hospitalID, id, u)
	if err != nil {
		return nil, db.Translate(err, msgBillNotFound, "update bill")
	}
	return b, nil
}

func (s *Service) DeleteBill(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.bills.Delete(ctx, hospitalID, id), msgBillNotFound, "delete bill")
}
