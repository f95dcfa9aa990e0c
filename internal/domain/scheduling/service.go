package scheduling

import (
	"context"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const msgAppointmentNotFound = "Appointment not found"

type Service struct {
	appointments AppointmentRepository
}

func NewService(appointments AppointmentRepository) *Service {
	return &Service{appointments: appointments}
}

// CreateAppointment books a Scheduled appointment and records the check-in
// time.
func (s *Service) CreateAppointment(ctx context.Context, req *CreateRequest) (*Appointment, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if req.PatientID <= 0 || req.DoctorID <= 0 || validate.Blank(req.AppointmentDate) {
		return nil, apperr.BadRequest("Missing required fields")
	}
	when, err := validate.Timestamp(req.AppointmentDate)
	if err != nil {
		return nil, apperr.BadRequest("Invalid appointment_date")
	}

	a := &Appointment{
		HospitalID:      hospitalID,
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: when,
		Status:          StatusScheduled,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, db.Translate(err, msgAppointmentNotFound, "create appointment")
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.appointments.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgAppointmentNotFound, "get appointment")
	}
	return a, nil
}

func (s *Service) ListAppointments(ctx context.Context, f AppointmentFilter, page pagination.Params) ([]*AppointmentDetail, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.appointments.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list appointments", err)
	}
	if list == nil {
		list = []*AppointmentDetail{}
	}
	return list, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *UpdateRequest) (*Appointment, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}

	ch := &AppointmentChanges{DoctorID: req.DoctorID, Status: req.Status}
	if req.DoctorID != nil && *req.DoctorID <= 0 {
		return nil, apperr.BadRequest("Invalid doctor_id")
	}
	if req.AppointmentDate != nil {
		when, err := validate.Timestamp(*req.AppointmentDate)
		if err != nil {
			return nil, apperr.BadRequest("Invalid appointment_date")
		}
		ch.AppointmentDate = &when
	}
	if req.Status != nil && !validate.OneOf(*req.Status, StatusScheduled, StatusCompleted, StatusCanceled) {
		return nil, apperr.BadRequest("Invalid status")
	}

	a, err := s.appointments.Update(ctx, hospitalID, id, ch)
	if err != nil {
		return nil, db.Translate(err, msgAppointmentNotFound, "update appointment")
	}
	return a, nil
}

// CheckOutAppointment completes the appointment and stamps check_out_time.
func (s *Service) CheckOutAppointment(ctx context.Context, id int64) (*Appointment, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.appointments.CheckOut(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgAppointmentNotFound, "check out appointment")
	}
	return a, nil
}

// CancelAppointment removes the appointment.
func (s *Service) CancelAppointment(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.appointments.Delete(ctx, hospitalID, id), msgAppointmentNotFound, "cancel appointment")
}
