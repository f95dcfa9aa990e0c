package medication

import (
	"context"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const msgPrescriptionNotFound = "Prescription not found"

type Service struct {
	prescriptions PrescriptionRepository
}

func NewService(prescriptions PrescriptionRepository) *Service {
	return &Service{prescriptions: prescriptions}
}

func (s *Service) CreatePrescription(ctx context.Context, req *CreateRequest) (*Prescription, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.PatientID <= 0 || req.ConsultationID <= 0 || req.DoctorID <= 0 ||
		validate.AnyBlank(req.MedicationName, req.Dosage, req.Frequency, req.Duration) {
		return nil, apperr.BadRequest("Missing required fields")
	}

	p := &Prescription{
		HospitalID:     hospitalID,
		PatientID:      req.PatientID,
		ConsultationID: req.ConsultationID,
		DoctorID:       req.DoctorID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Duration:       req.Duration,
		Instructions:   req.Instructions,
		Status:         StatusActive,
	}
	if err := s.prescriptions.Create(ctx, p); err != nil {
		return nil, db.Translate(err, msgPrescriptionNotFound, "create prescription")
	}
	return p, nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*Prescription, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.prescriptions.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgPrescriptionNotFound, "get prescription")
	}
	return p, nil
}

func (s *Service) ListPrescriptions(ctx context.Context, f PrescriptionFilter, page pagination.Params) ([]*Prescription, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.prescriptions.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list prescriptions", err)
	}
	if list == nil {
		list = []*Prescription{}
	}
	return list, nil
}

func (s *Service) UpdatePrescription(ctx context.Context, id int64, u *PrescriptionUpdate) (*Prescription, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.Status) || validate.BlankPtr(u.Dosage) ||
		validate.BlankPtr(u.Frequency) || validate.BlankPtr(u.Duration) {
		return nil, apperr.BadRequest("status, dosage, frequency and duration cannot be empty")
	}
	p, err := s.prescriptions.Update(ctx, hospitalID, id, u)
	if err != nil {
		return nil, db.Translate(err, msgPrescriptionNotFound, "update prescription")
	}
	return p, nil
}

func (s *Service) DeletePrescription(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.prescriptions.Delete(ctx, hospitalID, id), msgPrescriptionNotFound, "delete prescription")
}
