package clinical

import (
	"time"
)

// MedicalRecord maps to the medicalrecords table. Vitals are optional.
type MedicalRecord struct {
	ID            int64     `json:"record_id"`
	HospitalID    int64     `json:"hospital_id"`
	PatientID     int64     `json:"patient_id"`
	DoctorID      int64     `json:"doctor_id"`
	Diagnosis     *string   `json:"diagnosis"`
	Treatment     *string   `json:"treatment"`
	Prescription  *string   `json:"prescription"`
	Weight        *float64  `json:"weight"`
	BloodPressure *string   `json:"blood_pressure"`
	Temperature   *float64  `json:"temperature"`
	HeartRate     *int      `json:"heart_rate"`
	Notes         *string   `json:"notes"`
	RecordDate    time.Time `json:"record_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Entry holds the clinical fields shared by create and update bodies.
type Entry struct {
	Diagnosis     *string  `json:"diagnosis"`
	Treatment     *string  `json:"treatment"`
	Prescription  *string  `json:"prescription"`
	Weight        *float64 `json:"weight"`
	BloodPressure *string  `json:"blood_pressure"`
	Temperature   *float64 `json:"temperature"`
	HeartRate     *int     `json:"heart_rate"`
	Notes         *string  `json:"notes"`
}

// CreateRequest is the body of POST /records/medical-records.
type CreateRequest struct {
	PatientID int64 `json:"patient_id"`
	DoctorID  int64 `json:"doctor_id"`
	Entry
}

type RecordFilter struct {
	PatientID *int64
	DoctorID  *int64
	Day       string
}

func (e *Entry) apply(r *MedicalRecord) {
	r.Diagnosis = e.Diagnosis
	r.Treatment = e.Treatment
	r.Prescription = e.Prescription
	r.Weight = e.Weight
	r.BloodPressure = e.BloodPressure
	r.Temperature = e.Temperature
	r.HeartRate = e.HeartRate
	r.Notes = e.Notes
}
