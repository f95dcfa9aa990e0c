package billing

import (
	"time"
)

const StatusPending = "Pending"

// Bill maps to the billing table. ServiceID points at the billed entity
// named by ServiceType (consultation, lab test, ...).
type Bill struct {
	ID          int64     `json:"billing_id"`
	HospitalID  int64     `json:"hospital_id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	ServiceType string    `json:"service_type"`
	ServiceID   int64     `json:"service_id"`
	AmountDue   float64   `json:"amount_due"`
	Status      string    `json:"status"`
	BillingDate time.Time `json:"billing_date"`
}

// CreateRequest is the body of POST /bill/billing.
type CreateRequest struct {
	PatientID   int64   `json:"patient_id"`
	DoctorID    int64   `json:"doctor_id"`
	ServiceType string  `json:"service_type"`
	ServiceID   int64   `json:"service_id"`
	AmountDue   float64 `json:"amount_due"`
}

type BillUpdate struct {
	Status      *string  `json:"status"`
	AmountDue   *float64 `json:"amount_due"`
	ServiceType *string  `json:"service_type"`
}

type BillFilter struct {
	PatientID *int64
	DoctorID  *int64
	Status    string
	Day       string
}
