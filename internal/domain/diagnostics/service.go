package diagnostics

import (
	"context"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const msgLabTestNotFound = "Lab test not found"

type Service struct {
	tests LabTestRepository
}

func NewService(tests LabTestRepository) *Service {
	return &Service{tests: tests}
}

// RequestLabTest records a Pending test ordered by a staff member.
func (s *Service) RequestLabTest(ctx context.Context, req *CreateRequest) (*LabTest, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.PatientID <= 0 || req.RequestedBy <= 0 || validate.Blank(req.TestName) {
		return nil, apperr.BadRequest("Missing required fields")
	}

	t := &LabTest{
		HospitalID:  hospitalID,
		PatientID:   req.PatientID,
		TestName:    req.TestName,
		TestType:    req.TestType,
		RequestedBy: req.RequestedBy,
		Status:      StatusPending,
	}
	if err := s.tests.Create(ctx, t); err != nil {
		return nil, db.Translate(err, msgLabTestNotFound, "request lab test")
	}
	return t, nil
}

func (s *Service) GetLabTest(ctx context.Context, id int64) (*LabTest, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tests.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgLabTestNotFound, "get lab test")
	}
	return t, nil
}

func (s *Service) ListLabTests(ctx context.Context, f LabTestFilter, page pagination.Params) ([]*LabTest, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.tests.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list lab tests", err)
	}
	if list == nil {
		list = []*LabTest{}
	}
	return list, nil
}

func (s *Service) UpdateLabTest(ctx context.Context, id int64, u *LabTestUpdate) (*LabTest, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.Status) {
		return nil, apperr.BadRequest("status cannot be empty")
	}
	if u.LabTechnicianID != nil && *u.LabTechnicianID <= 0 {
		return nil, apperr.BadRequest("Invalid lab_technician_id")
	}

	t, err := s.tests.Update(ctx, hospitalID, id, u)
	if err != nil {
		return nil, db.Translate(err, msgLabTestNotFound, "update lab test")
	}
	return t, nil
}

func (s *Service) DeleteLabTest(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.tests.Delete(ctx, hospitalID, id), msgLabTestNotFound, "delete lab test")
}
