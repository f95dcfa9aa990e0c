package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/dval/hmis/pkg/apperr"
)

// Roles carried in tokens. Staff roles are free-form in storage; only the
// ones below are granted write permissions.
const (
	RoleAdmin         = "Admin"
	RoleDoctor        = "Doctor"
	RoleNurse         = "Nurse"
	RoleReceptionist  = "Receptionist"
	RoleLabTechnician = "Lab Technician"
	RolePharmacist    = "Pharmacist"
	RoleAccountant    = "Accountant"
)

// Permission names a mutating capability.
type Permission string

const (
	PermHospitalWrite     Permission = "hospital.write"
	PermDepartmentWrite   Permission = "department.write"
	PermStaffWrite        Permission = "staff.write"
	PermPatientWrite      Permission = "patient.write"
	PermPatientDelete     Permission = "patient.delete"
	PermAppointmentWrite  Permission = "appointment.write"
	PermConsultationWrite Permission = "consultation.write"
	PermLabTestWrite      Permission = "labtest.write"
	PermRecordWrite       Permission = "record.write"
	PermPrescriptionWrite Permission = "prescription.write"
	PermBillingWrite      Permission = "billing.write"
)

// permissionTable lists the non-Admin roles allowed each permission. Admin
// holds every permission.
var permissionTable = map[Permission][]string{
	PermHospitalWrite:     nil,
	PermDepartmentWrite:   nil,
	PermStaffWrite:        nil,
	PermPatientDelete:     nil,
	PermPatientWrite:      {RoleDoctor, RoleNurse, RoleReceptionist},
	PermAppointmentWrite:  {RoleDoctor, RoleNurse, RoleReceptionist},
	PermConsultationWrite: {RoleDoctor},
	PermLabTestWrite:      {RoleDoctor, RoleNurse, RoleLabTechnician},
	PermRecordWrite:       {RoleDoctor, RoleNurse},
	PermPrescriptionWrite: {RoleDoctor, RolePharmacist},
	PermBillingWrite:      {RoleAccountant, RoleReceptionist},
}

// Allowed reports whether role holds perm. Unknown permissions are denied.
func Allowed(role string, perm Permission) bool {
	roles, ok := permissionTable[perm]
	if !ok {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns middleware that admits callers whose role holds perm.
func Require(perm Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c.Request().Context())
			if !ok {
				return apperr.Unauthenticated(msgNoToken)
			}
			if !Allowed(id.Role, perm) {
				return apperr.Forbidden("Access denied. Insufficient permissions.")
			}
			return next(c)
		}
	}
}

// Permissions returns a copy of the table, keyed by permission.
func Permissions() map[Permission][]string {
	out := make(map[Permission][]string, len(permissionTable))
	for p, roles := range permissionTable {
		out[p] = append([]string{RoleAdmin}, roles...)
	}
	return out
}
