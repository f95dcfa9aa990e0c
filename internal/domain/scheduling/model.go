package scheduling

import (
	"time"
)

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCanceled  = "Canceled"
)

// Appointment maps to the appointments table.
type Appointment struct {
	ID              int64      `json:"appointment_id"`
	HospitalID      int64      `json:"hospital_id"`
	PatientID       int64      `json:"patient_id"`
	DoctorID        int64      `json:"doctor_id"`
	AppointmentDate time.Time  `json:"appointment_date"`
	Status          string     `json:"status"`
	CheckInTime     *time.Time `json:"check_in_time"`
	CheckOutTime    *time.Time `json:"check_out_time"`
}

// AppointmentDetail is an appointment joined with the names of its patient,
// doctor and the doctor's department.
type AppointmentDetail struct {
	Appointment
	PatientName    string  `json:"patient_name"`
	DoctorName     string  `json:"doctor_name"`
	DepartmentName *string `json:"department_name"`
}

// CreateRequest is the body of POST /appointments.
type CreateRequest struct {
	PatientID       int64  `json:"patient_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
}

// UpdateRequest is the body of PUT /appointments/:id.
type UpdateRequest struct {
	DoctorID        *int64  `json:"doctor_id"`
	AppointmentDate *string `json:"appointment_date"`
	Status          *string `json:"status"`
}

// AppointmentChanges is a validated partial update.
type AppointmentChanges struct {
	DoctorID        *int64
	AppointmentDate *time.Time
	Status          *string
}

type AppointmentFilter struct {
	DoctorID  *int64
	PatientID *int64
	Day       string
	Status    string
}
