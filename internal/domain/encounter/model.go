package encounter

import (
	"time"
)

const StatusPending = "Pending"

// Consultation maps to the consultations table.
type Consultation struct {
	ID               int64     `json:"consultation_id"`
	HospitalID       int64     `json:"hospital_id"`
	PatientID        int64     `json:"patient_id"`
	DoctorID         int64     `json:"doctor_id"`
	Symptoms         string    `json:"symptoms"`
	Diagnosis        *string   `json:"diagnosis"`
	TreatmentPlan    *string   `json:"treatment_plan"`
	ReferredFrom     *string   `json:"referred_from"`
	ReferredTo       *string   `json:"referred_to"`
	Notes            *string   `json:"notes"`
	Status           string    `json:"status"`
	ConsultationDate time.Time `json:"consultation_date"`
	FollowUpDate     *string   `json:"follow_up_date"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateRequest is the body of POST /consultations/new-consultation.
type CreateRequest struct {
	PatientID    int64   `json:"patient_id"`
	DoctorID     int64   `json:"doctor_id"`
	Symptoms     string  `json:"symptoms"`
	ReferredFrom *string `json:"referred_from"`
	ReferredTo   *string `json:"referred_to"`
	Notes        *string `json:"notes"`
}

// ConsultationUpdate carries the fields of a partial update.
type ConsultationUpdate struct {
	Symptoms      *string `json:"symptoms"`
	Diagnosis     *string `json:"diagnosis"`
	TreatmentPlan *string `json:"treatment_plan"`
	ReferredFrom  *string `json:"referred_from"`
	ReferredTo    *string `json:"referred_to"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
	FollowUpDate  *string `json:"follow_up_date"`
}

type ConsultationFilter struct {
	PatientID *int64
	DoctorID  *int64
	Status    string
}
