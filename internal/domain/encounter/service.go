package encounter

import (
	"context"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const msgConsultationNotFound = "Consultation not found"

type Service struct {
	consultations ConsultationRepository
}

func NewService(consultations ConsultationRepository) *Service {
	return &Service{consultations: consultations}
}

// CreateConsultation opens a Pending consultation for a patient.
func (s *Service) CreateConsultation(ctx context.Context, req *CreateRequest) (*Consultation, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.PatientID <= 0 || req.DoctorID <= 0 || validate.Blank(req.Symptoms) {
		return nil, apperr.BadRequest("Missing required fields")
	}

	c := &Consultation{
		HospitalID:   hospitalID,
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Symptoms:     req.Symptoms,
		ReferredFrom: req.ReferredFrom,
		ReferredTo:   req.ReferredTo,
		Notes:        req.Notes,
		Status:       StatusPending,
	}
	if err := s.consultations.Create(ctx, c); err != nil {
		return nil, db.Translate(err, msgConsultationNotFound, "create consultation")
	}
	return c, nil
}

func (s *Service) GetConsultation(ctx context.Context, id int64) (*Consultation, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.consultations.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgConsultationNotFound, "get consultation")
	}
	return c, nil
}

func (s *Service) ListConsultations(ctx context.Context, f ConsultationFilter, page pagination.Params) ([]*Consultation, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.consultations.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list consultations", err)
	}
	if list == nil {
		list = []*Consultation{}
	}
	return list, nil
}

func (s *Service) UpdateConsultation(ctx context.Context, id int64, u *ConsultationUpdate) (*Consultation, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.Symptoms) || validate.BlankPtr(u.Status) {
		return nil, apperr.BadRequest("symptoms and status cannot be empty")
	}
	if u.FollowUpDate != nil && !validate.Date(*u.FollowUpDate) {
		return nil, apperr.BadRequest("Invalid follow_up_date, expected YYYY-MM-DD")
	}

	c, err := s.consultations.Update(ctx, hospitalID, id, u)
	if err != nil {
		return nil, db.Translate(err, msgConsultationNotFound, "update consultation")
	}
	return c, nil
}

func (s *Service) DeleteConsultation(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.consultations.Delete(ctx, hospitalID, id), msgConsultationNotFound, "delete consultation")
}
