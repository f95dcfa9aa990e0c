package hospital

import (
	"time"
)

// Admin maps to the admin table. HospitalID is back-linked during signup.
type Admin struct {
	ID               int64     `json:"admin_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	NationalID       *string   `json:"national_id"`
	KRAPin           *string   `json:"kra_pin"`
	ContactNumber    *string   `json:"contact_number"`
	Role             string    `json:"role"`
	HospitalID       *int64    `json:"hospital_id"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Hospital maps to the hospital table. Every tenant-owned row points at one.
type Hospital struct {
	ID                 int64     `json:"hospital_id"`
	HospitalName       string    `json:"hospital_name"`
	RegistrationNumber *string   `json:"registration_number"`
	Location           *string   `json:"location"`
	Type               *string   `json:"type"`
	ContactInfo        *string   `json:"contact_info"`
	AdminID            int64     `json:"admin_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// SignupRequest registers an administrator together with their hospital.
type SignupRequest struct {
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	NationalID         *string `json:"national_id"`
	KRAPin             *string `json:"kra_pin"`
	ContactNumber      *string `json:"contact_number"`
	Role               string  `json:"role"`
	HospitalName       string  `json:"hospital_name"`
	RegistrationNumber *string `json:"registration_number"`
	Location           *string `json:"location"`
	Type               *string `json:"type"`
	ContactInfo        *string `json:"contact_info"`
}

type SignupResult struct {
	Message    string `json:"message"`
	Token      string `json:"token"`
	AdminID    int64  `json:"admin_id"`
	HospitalID int64  `json:"hospital_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type HospitalUpdate struct {
	HospitalName *string `json:"hospital_name"`
	Location     *string `json:"location"`
	Type         *string `json:"type"`
	ContactInfo  *string `json:"contact_info"`
}
