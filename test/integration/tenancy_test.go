package integration

import (
	"context"
	"testing"
	"time"

	"github.com/dval/hmis/internal/domain/admin"
	"github.com/dval/hmis/internal/domain/hospital"
	"github.com/dval/hmis/internal/domain/identity"
	"github.com/dval/hmis/internal/domain/scheduling"
	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
)

func TestSignupAndLogin(t *testing.T) {
	pool := requireDB(t)
	svc := hospitalService(pool)

	_, res := newTenant(t, pool, "signup")

	var linked int64
	if err := pool.QueryRow(context.Background(),
		`SELECT hospital_id FROM admin WHERE admin_id = $1`, res.AdminID).Scan(&linked); err != nil {
		t.Fatalf("read admin: %v", err)
	}
	if linked != res.HospitalID {
		t.Errorf("expected admin linked to hospital %d, got %d", res.HospitalID, linked)
	}

	var email string
	pool.QueryRow(context.Background(), `SELECT email FROM admin WHERE admin_id = $1`, res.AdminID).Scan(&email)
	token, err := svc.Login(context.Background(), &hospital.LoginRequest{Email: email, Password: "integration-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := testIssuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.HospitalID != res.HospitalID || claims.Role != auth.RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestPatientDuplicatePerTenant(t *testing.T) {
	pool := requireDB(t)
	svc := identity.NewService(identity.NewPatientRepo(pool))
	ctxA, _ := newTenant(t, pool, "dupA")
	ctxB, _ := newTenant(t, pool, "dupB")

	newPatient := func() *identity.Patient {
		return &identity.Patient{FirstName: "Amina", LastName: "Wanjiru", DateOfBirth: "1990-05-01", Gender: "Female"}
	}

	if err := svc.RegisterPatient(ctxA, newPatient()); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := svc.RegisterPatient(ctxA, newPatient()); !apperr.Is(err, apperr.TypeConflict) {
		t.Errorf("expected conflict in same hospital, got %v", err)
	}
	if err := svc.RegisterPatient(ctxB, newPatient()); err != nil {
		t.Errorf("expected registration in another hospital to succeed, got %v", err)
	}
}

func TestCrossTenantIsolation(t *testing.T) {
	pool := requireDB(t)
	patients := identity.NewService(identity.NewPatientRepo(pool))
	appointments := scheduling.NewService(scheduling.NewAppointmentRepo(pool))
	staff := admin.NewService(admin.NewDepartmentRepo(pool), admin.NewStaffRepo(pool), testIssuer, admin.StaffConfig{BcryptCost: 4, TokenTTL: time.Hour})

	ctxA, _ := newTenant(t, pool, "isoA")
	ctxB, _ := newTenant(t, pool, "isoB")

	p := &identity.Patient{FirstName: "Otieno", LastName: "Kamau", DateOfBirth: "1985-01-01", Gender: "Male"}
	if err := patients.RegisterPatient(ctxA, p); err != nil {
		t.Fatalf("register: %v", err)
	}
	doc, _, err := staff.CreateStaff(ctxA, &admin.CreateStaffRequest{
		FirstName: "Grace", LastName: "Njeri", Email: "grace-" + time.Now().Format("150405.000000") + "@example.test", Role: auth.RoleDoctor,
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}

	if _, err := patients.GetPatient(ctxB, p.ID); !apperr.Is(err, apperr.TypeNotFound) {
		t.Errorf("expected not found across tenants, got %v", err)
	}
	if err := patients.DeletePatient(ctxB, p.ID); !apperr.Is(err, apperr.TypeNotFound) {
		t.Errorf("expected not found deleting across tenants, got %v", err)
	}

	req := &scheduling.CreateRequest{PatientID: p.ID, DoctorID: doc.ID, AppointmentDate: "2030-01-02T09:00:00Z"}
	if _, err := appointments.CreateAppointment(ctxB, req); !apperr.Is(err, apperr.TypeBadRequest) {
		t.Errorf("expected bad request booking another hospital's patient, got %v", err)
	}

	a, err := appointments.CreateAppointment(ctxA, req)
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	list, err := appointments.ListAppointments(ctxB, scheduling.AppointmentFilter{}, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no appointments visible to hospital B, got %d", len(list))
	}

	status := scheduling.StatusCompleted
	done, err := appointments.UpdateAppointment(ctxA, a.ID, &scheduling.UpdateRequest{Status: &status})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.CheckOutTime == nil {
		t.Error("expected check_out_time to be stamped on completion")
	}
	if done.DoctorID != doc.ID || !done.AppointmentDate.Equal(a.AppointmentDate) {
		t.Errorf("completion changed other fields: %+v", done)
	}
}

func TestPatientPartialUpdate(t *testing.T) {
	pool := requireDB(t)
	svc := identity.NewService(identity.NewPatientRepo(pool))
	ctx, _ := newTenant(t, pool, "coalesce")

	residence := "Kisumu"
	p := &identity.Patient{FirstName: "Brian", LastName: "Ochieng", DateOfBirth: "2000-02-29", Gender: "Male", Residence: &residence}
	if err := svc.RegisterPatient(ctx, p); err != nil {
		t.Fatalf("register: %v", err)
	}

	same, err := svc.UpdatePatient(ctx, p.ID, &identity.PatientUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if same.FirstName != "Brian" || same.Residence == nil || *same.Residence != "Kisumu" || same.DateOfBirth != "2000-02-29" {
		t.Errorf("empty update changed the row: %+v", same)
	}

	contact := "0711 111 111"
	changed, err := svc.UpdatePatient(ctx, p.ID, &identity.PatientUpdate{ContactInfo: &contact})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if changed.ContactInfo == nil || *changed.ContactInfo != contact || *changed.Residence != "Kisumu" {
		t.Errorf("expected only contact_info to change, got %+v", changed)
	}
}
