package diagnostics

import (
	"time"
)

const StatusPending = "Pending"

// LabTest maps to the labtests table. RequestedBy and LabTechnicianID are
// staff ids.
type LabTest struct {
	ID              int64     `json:"test_id"`
	HospitalID      int64     `json:"hospital_id"`
	PatientID       int64     `json:"patient_id"`
	TestName        string    `json:"test_name"`
	TestType        *string   `json:"test_type"`
	RequestedBy     int64     `json:"requested_by"`
	Result          *string   `json:"result"`
	Status          string    `json:"status"`
	LabTechnicianID *int64    `json:"lab_technician_id"`
	TestDate        time.Time `json:"test_date"`
}

// CreateRequest is the body of POST /lab/lab-tests.
type CreateRequest struct {
	PatientID   int64   `json:"patient_id"`
	TestName    string  `json:"test_name"`
	TestType    *string `json:"test_type"`
	RequestedBy int64   `json:"requested_by"`
}

// LabTestUpdate records a result. test_date is refreshed on every update.
type LabTestUpdate struct {
	Result          *string `json:"result"`
	Status          *string `json:"status"`
	LabTechnicianID *int64  `json:"lab_technician_id"`
}

type LabTestFilter struct {
	PatientID   *int64
	RequestedBy *int64
	Status      string
	Day         string
}
