package identity

import (
	"time"
)

// Patient maps to the patients table. Age is derived from date_of_birth.
type Patient struct {
	ID               int64     `json:"patient_id"`
	HospitalID       int64     `json:"hospital_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	ContactInfo      *string   `json:"contact_info"`
	Residence        *string   `json:"residence"`
	InsuranceID      *string   `json:"insurance_id"`
	EmergencyContact *string   `json:"emergency_contact"`
	RegistrationDate time.Time `json:"registration_date"`
}

// PatientUpdate carries the fields of a partial update. Nil fields keep
// their stored value.
type PatientUpdate struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	DateOfBirth      *string `json:"date_of_birth"`
	Gender           *string `json:"gender"`
	ContactInfo      *string `json:"contact_info"`
	Residence        *string `json:"residence"`
	InsuranceID      *string `json:"insurance_id"`
	EmergencyContact *string `json:"emergency_contact"`
}

// PatientFilter narrows a patient listing. Zero values are ignored.
type PatientFilter struct {
	Name   string
	Gender string
	Age    *int
}
