package identity

import (
	"context"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const (
	msgPatientNotFound  = "Patient not found"
	msgPatientDuplicate = "Patient with the same name and date of birth already exists."
)

type Service struct {
	patients PatientRepository
}

func NewService(patients PatientRepository) *Service {
	return &Service{patients: patients}
}

// RegisterPatient creates a patient in the caller's hospital. A patient with
// the same first name, last name and date of birth may only exist once per
// hospital.
func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	if validate.AnyBlank(p.FirstName, p.LastName, p.DateOfBirth, p.Gender) {
		return apperr.BadRequest("Missing required fields")
	}
	if !validate.Date(p.DateOfBirth) {
		return apperr.BadRequest("Invalid date_of_birth, expected YYYY-MM-DD")
	}

	exists, err := s.patients.ExistsByIdentity(ctx, hospitalID, p.FirstName, p.LastName, p.DateOfBirth)
	if err != nil {
		return apperr.Internal("check duplicate patient", err)
	}
	if exists {
		return apperr.Conflict(msgPatientDuplicate)
	}

	p.ID = 0
	p.HospitalID = hospitalID
	if err := s.patients.Create(ctx, p); err != nil {
		if db.IsUniqueViolation(err, uniqueIdentityConstraint) {
			return apperr.Conflict(msgPatientDuplicate)
		}
		return apperr.Internal("create patient", err)
	}
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgPatientNotFound, "get patient")
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, f PatientFilter, page pagination.Params) ([]*Patient, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list patients", err)
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return patients, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, u *PatientUpdate) (*Patient, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.FirstName) || validate.BlankPtr(u.LastName) || validate.BlankPtr(u.Gender) {
		return nil, apperr.BadRequest("first_name, last_name and gender cannot be empty")
	}
	if u.DateOfBirth != nil && !validate.Date(*u.DateOfBirth) {
		return nil, apperr.BadRequest("Invalid date_of_birth, expected YYYY-MM-DD")
	}

	p, err := s.patients.Update(ctx, hospitalID, id, u)
	if err != nil {
		if db.IsUniqueViolation(err, uniqueIdentityConstraint) {
			return nil, apperr.Conflict(msgPatientDuplicate)
		}
		return nil, db.Translate(err, msgPatientNotFound, "update patient")
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.patients.Delete(ctx, hospitalID, id), msgPatientNotFound, "delete patient")
}
