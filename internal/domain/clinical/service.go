package clinical

import (
	"context"
	"math"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
)

const msgRecordNotFound = "Medical record not found"

type Service struct {
	records MedicalRecordRepository
}

func NewService(records MedicalRecordRepository) *Service {
	return &Service{records: records}
}

// Upper bounds follow the column types: weight NUMERIC(6,2), temperature
// NUMERIC(4,1), heart_rate INTEGER.
const (
	maxWeight      = 9999.99
	maxTemperature = 999.9
	maxHeartRate   = math.MaxInt32
)

func validateVitals(e *Entry) error {
	if e.Weight != nil && (*e.Weight <= 0 || *e.Weight > maxWeight) {
		return apperr.BadRequest("weight must be positive and at most 9999.99")
	}
	if e.Temperature != nil && (*e.Temperature <= 0 || *e.Temperature > maxTemperature) {
		return apperr.BadRequest("temperature must be positive and at most 999.9")
	}
	if e.HeartRate != nil && (*e.HeartRate <= 0 || int64(*e.HeartRate) > maxHeartRate) {
		return apperr.BadRequest("heart_rate must be a positive integer")
	}
	return nil
}

func (s *Service) CreateMedicalRecord(ctx context.Context, req *CreateRequest) (*MedicalRecord, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.PatientID <= 0 || req.DoctorID <= 0 {
		return nil, apperr.BadRequest("Missing required fields")
	}
	if err := validateVitals(&req.Entry); err != nil {
		return nil, err
	}

	m := &MedicalRecord{HospitalID: hospitalID, PatientID: req.PatientID, DoctorID: req.DoctorID}
	req.Entry.apply(m)
	if err := s.records.Create(ctx, m); err != nil {
		return nil, db.Translate(err, msgRecordNotFound, "create medical record")
	}
	return m, nil
}

func (s *Service) GetMedicalRecord(ctx context.Context, id int64) (*MedicalRecord, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	m, err := s.records.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgRecordNotFound, "get medical record")
	}
	return m, nil
}

func (s *Service) ListMedicalRecords(ctx context.Context, f RecordFilter, page pagination.Params) ([]*MedicalRecord, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.records.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list medical records", err)
	}
	if list == nil {
		list = []*MedicalRecord{}
	}
	return list, nil
}

func (s *Service) UpdateMedicalRecord(ctx context.Context, id int64, e *Entry) (*MedicalRecord, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateVitals(e); err != nil {
		return nil, err
	}
	m, err := s.records.Update(ctx, hospitalID, id, e)
	if err != nil {
		return nil, db.Translate(err, msgRecordNotFound, "update medical record")
	}
	return m, nil
}

func (s *Service) DeleteMedicalRecord(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.records.Delete(ctx, hospitalID, id), msgRecordNotFound, "delete medical record")
}
