package admin

import (
	"time"
)

// Department maps to the departments table.
type Department struct {
	ID             int64   `json:"department_id"`
	HospitalID     int64   `json:"hospital_id"`
	DepartmentName string  `json:"department_name"`
	Location       *string `json:"location"`
}

type DepartmentUpdate struct {
	DepartmentName *string `json:"department_name"`
	Location       *string `json:"location"`
}

type DepartmentFilter struct {
	Name string
}

// Staff maps to the staff table. PasswordHash never leaves the server.
type Staff struct {
	ID             int64     `json:"staff_id"`
	HospitalID     int64     `json:"hospital_id"`
	DepartmentID   *int64    `json:"department_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ContactInfo    *string   `json:"contact_info"`
	EmploymentDate time.Time `json:"employment_date"`
	PasswordHash   string    `json:"-"`
}

// CreateStaffRequest is the body of POST /staff/create-staff. A temporary
// password is generated when Password is empty.
type CreateStaffRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	DepartmentID *int64  `json:"department_id"`
	ContactInfo  *string `json:"contact_info"`
	Password     string  `json:"password"`
}

// CreatedStaff is the create response; TemporaryPassword is shown once.
type CreatedStaff struct {
	Message           string `json:"message"`
	Staff             *Staff `json:"staff"`
	TemporaryPassword string `json:"temporaryPassword"`
}

type StaffUpdate struct {
	Role         *string `json:"role"`
	DepartmentID *int64  `json:"department_id"`
	ContactInfo  *string `json:"contact_info"`
}

type StaffFilter struct {
	Role         string
	DepartmentID *int64
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
