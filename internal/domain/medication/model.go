package medication

import (
	"time"
)

const StatusActive = "Active"

// Prescription maps to the prescriptions table. Every prescription is issued
// from a consultation of the same patient.
type Prescription struct {
	ID             int64     `json:"prescription_id"`
	HospitalID     int64     `json:"hospital_id"`
	PatientID      int64     `json:"patient_id"`
	ConsultationID int64     `json:"consultation_id"`
	DoctorID       int64     `json:"doctor_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration"`
	Instructions   *string   `json:"instructions"`
	Status         string    `json:"status"`
	PrescribedDate time.Time `json:"prescribed_date"`
}

// CreateRequest is the body of POST /prescriptions/new-prescription.
type CreateRequest struct {
	PatientID      int64   `json:"patient_id"`
	ConsultationID int64   `json:"consultation_id"`
	DoctorID       int64   `json:"doctor_id"`
	MedicationName string  `json:"medication_name"`
	Dosage         string  `json:"dosage"`
	Frequency      string  `json:"frequency"`
	Duration       string  `json:"duration"`
	Instructions   *string `json:"instructions"`
}

type PrescriptionUpdate struct {
	Status       *string `json:"status"`
	Dosage       *string `json:"dosage"`
	Frequency    *string `json:"frequency"`
	Duration     *string `json:"duration"`
	Instructions *string `json:"instructions"`
}

type PrescriptionFilter struct {
	PatientID *int64
	DoctorID  *int64
	Status    string
	Day       string
}
