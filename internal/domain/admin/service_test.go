package admin

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
)

// -- Mock Department Repository --

type mockDeptRepo struct {
	depts  map[int64]*Department
	nextID int64
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[int64]*Department)}
}

func (m *mockDeptRepo) Create(_ context.Context, d *Department) error {
	m.nextID++
	d.ID = m.nextID
	cp := *d
	m.depts[d.ID] = &cp
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, hospitalID, id int64) (*Department, error) {
	d, ok := m.depts[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, db.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDeptRepo) List(_ context.Context, hospitalID int64, f DepartmentFilter, _ pagination.Params) ([]*Department, error) {
	var out []*Department
	for id := int64(1); id <= m.nextID; id++ {
		d, ok := m.depts[id]
		if !ok || d.HospitalID != hospitalID {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(d.DepartmentName), strings.ToLower(f.Name)) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockDeptRepo) Update(_ context.Context, hospitalID, id int64, u *DepartmentUpdate) (*Department, error) {
	d, ok := m.depts[id]
	if !ok || d.HospitalID != hospitalID {
		return nil, db.ErrNotFound
	}
	if u.DepartmentName != nil {
		d.DepartmentName = *u.DepartmentName
	}
	if u.Location != nil {
		d.Location = u.Location
	}
	cp := *d
	return &cp, nil
}

func (m *mockDeptRepo) Delete(_ context.Context, hospitalID, id int64) error {
	d, ok := m.depts[id]
	if !ok || d.HospitalID != hospitalID {
		return db.ErrNotFound
	}
	delete(m.depts, id)
	return nil
}

// -- Mock Staff Repository --

type mockStaffRepo struct {
	staff  map[int64]*Staff
	depts  *mockDeptRepo
	nextID int64
}

func newMockStaffRepo(depts *mockDeptRepo) *mockStaffRepo {
	return &mockStaffRepo{staff: make(map[int64]*Staff), depts: depts}
}

func (m *mockStaffRepo) deptInHospital(hospitalID int64, id *int64) bool {
	if id == nil {
		return true
	}
	d, ok := m.depts.depts[*id]
	return ok && d.HospitalID == hospitalID
}

func (m *mockStaffRepo) Create(_ context.Context, s *Staff) error {
	for _, existing := range m.staff {
		if existing.Email == s.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: uniqueStaffEmailConstraint}
		}
	}
	if !m.deptInHospital(s.HospitalID, s.DepartmentID) {
		return db.ErrInvalidReference
	}
	m.nextID++
	s.ID = m.nextID
	s.EmploymentDate = time.Now()
	cp := *s
	m.staff[s.ID] = &cp
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, hospitalID, id int64) (*Staff, error) {
	s, ok := m.staff[id]
	if !ok || s.HospitalID != hospitalID {
		return nil, db.ErrNotFound
	}
	cp := *s
	cp.PasswordHash = ""
	return &cp, nil
}

func (m *mockStaffRepo) GetByEmail(_ context.Context, email string) (*Staff, error) {
	for _, s := range m.staff {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStaffRepo) List(_ context.Context, hospitalID int64, f StaffFilter, _ pagination.Params) ([]*Staff, error) {
	var out []*Staff
	for id := int64(1); id <= m.nextID; id++ {
		s, ok := m.staff[id]
		if !ok || s.HospitalID != hospitalID ||
			(f.Role != "" && s.Role != f.Role) ||
			(f.DepartmentID != nil && (s.DepartmentID == nil || *s.DepartmentID != *f.DepartmentID)) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockStaffRepo) Update(_ context.Context, hospitalID, id int64, u *StaffUpdate) (*Staff, error) {
	s, ok := m.staff[id]
	if !ok || s.HospitalID != hospitalID {
		return nil, db.ErrNotFound
	}
	if !m.deptInHospital(hospitalID, u.DepartmentID) {
		return nil, db.ErrInvalidReference
	}
	if u.Role != nil {
		s.Role = *u.Role
	}
	if u.DepartmentID != nil {
		s.DepartmentID = u.DepartmentID
	}
	if u.ContactInfo != nil {
		s.ContactInfo = u.ContactInfo
	}
	cp := *s
	return &cp, nil
}

func (m *mockStaffRepo) Delete(_ context.Context, hospitalID, id int64) error {
	s, ok := m.staff[id]
	if !ok || s.HospitalID != hospitalID {
		return db.ErrNotFound
	}
	delete(m.staff, id)
	return nil
}

var testIssuer = auth.NewTokenIssuer([]byte("admin-test-secret-admin-test-secret"))

func newTestService() *Service {
	depts := newMockDeptRepo()
	return NewService(depts, newMockStaffRepo(depts), testIssuer, StaffConfig{
		BcryptCost: bcrypt.MinCost,
		TokenTTL:   8 * time.Hour,
	})
}

func tenantCtx(hospitalID int64) context.Context {
	return db.WithTenant(context.Background(), hospitalID)
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

// -- Department Tests --

func TestCreateDepartment(t *testing.T) {
	svc := newTestService()
	d := &Department{DepartmentName: "Cardiology", Location: strPtr("Block A")}
	if err := svc.CreateDepartment(tenantCtx(1), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == 0 || d.HospitalID != 1 {
		t.Errorf("expected id and hospital to be assigned, got %+v", d)
	}
}

func TestCreateDepartment_NameRequired(t *testing.T) {
	svc := newTestService()
	err := svc.CreateDepartment(tenantCtx(1), &Department{DepartmentName: "  "})
	ae, ok := apperr.As(err)
	if !ok || ae.Type != apperr.TypeBadRequest || ae.Message != "Department name is required" {
		t.Errorf("expected name required error, got %v", err)
	}
}

func TestCreateDepartment_IgnoresBodyHospital(t *testing.T) {
	svc := newTestService()
	d := &Department{DepartmentName: "Radiology", HospitalID: 99}
	if err := svc.CreateDepartment(tenantCtx(1), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.HospitalID != 1 {
		t.Errorf("expected hospital 1 from tenant, got %d", d.HospitalID)
	}
}

func TestUpdateDepartment_Partial(t *testing.T) {
	svc := newTestService()
	d := &Department{DepartmentName: "Cardiology", Location: strPtr("Block A")}
	svc.CreateDepartment(tenantCtx(1), d)

	unchanged, err := svc.UpdateDepartment(tenantCtx(1), d.ID, &DepartmentUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unchanged.DepartmentName != "Cardiology" || *unchanged.Location != "Block A" {
		t.Errorf("empty update changed the row: %+v", unchanged)
	}

	moved, err := svc.UpdateDepartment(tenantCtx(1), d.ID, &DepartmentUpdate{Location: strPtr("Block C")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.DepartmentName != "Cardiology" || *moved.Location != "Block C" {
		t.Errorf("expected only location to change, got %+v", moved)
	}
}

func TestDepartment_CrossTenantIsNotFound(t *testing.T) {
	svc := newTestService()
	d := &Department{DepartmentName: "Cardiology"}
	svc.CreateDepartment(tenantCtx(1), d)

	if _, err := svc.GetDepartment(tenantCtx(2), d.ID); !apperr.Is(err, apperr.TypeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := svc.DeleteDepartment(tenantCtx(2), d.ID); !apperr.Is(err, apperr.TypeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListDepartments_NameFilter(t *testing.T) {
	svc := newTestService()
	svc.CreateDepartment(tenantCtx(1), &Department{DepartmentName: "Cardiology"})
	svc.CreateDepartment(tenantCtx(1), &Department{DepartmentName: "Neurology"})
	svc.CreateDepartment(tenantCtx(1), &Department{DepartmentName: "Pharmacy"})

	list, err := svc.ListDepartments(tenantCtx(1), DepartmentFilter{Name: "LOGY"}, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 departments, got %d", len(list))
	}

	empty, _ := svc.ListDepartments(tenantCtx(2), DepartmentFilter{}, pagination.Params{})
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil list, got %v", empty)
	}
}

// -- Staff Tests --

func doctorRequest() *CreateStaffRequest {
	return &CreateStaffRequest{FirstName: "Ann", LastName: "Mwangi", Email: "ann@example.test", Role: auth.RoleDoctor}
}

func TestCreateStaff_GeneratesPassword(t *testing.T) {
	svc := newTestService()
	st, password, err := svc.CreateStaff(tenantCtx(1), doctorRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(password) != auth.TempPasswordLength {
		t.Errorf("expected %d character password, got %q", auth.TempPasswordLength, password)
	}
	if st.HospitalID != 1 || st.ID == 0 {
		t.Errorf("unexpected staff %+v", st)
	}
	if !auth.VerifyPassword(st.PasswordHash, password) {
		t.Error("stored hash does not match returned password")
	}
}

func TestCreateStaff_SuppliedPassword(t *testing.T) {
	svc := newTestService()
	req := doctorRequest()
	req.Password = "chosen-password"
	_, password, err := svc.CreateStaff(tenantCtx(1), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if password != "chosen-password" {
		t.Errorf("expected supplied password back, got %q", password)
	}
}

func TestCreateStaff_Errors(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.CreateStaff(tenantCtx(1), &CreateStaffRequest{FirstName: "Ann"}); !apperr.Is(err, apperr.TypeBadRequest) {
		t.Errorf("expected bad request for missing fields, got %v", err)
	}

	svc.CreateStaff(tenantCtx(1), doctorRequest())
	if _, _, err := svc.CreateStaff(tenantCtx(2), doctorRequest()); !apperr.Is(err, apperr.TypeConflict) {
		t.Errorf("expected conflict for duplicate email, got %v", err)
	}

	foreign := &Department{DepartmentName: "Cardiology"}
	svc.CreateDepartment(tenantCtx(2), foreign)
	req := doctorRequest()
	req.Email = "other@example.test"
	req.DepartmentID = &foreign.ID
	if _, _, err := svc.CreateStaff(tenantCtx(1), req); !apperr.Is(err, apperr.TypeBadRequest) {
		t.Errorf("expected bad request for department of another hospital, got %v", err)
	}
}

func TestCreateStaff_PasswordTooLong(t *testing.T) {
	svc := newTestService()
	req := doctorRequest()
	req.Password = strings.Repeat("p", auth.MaxPasswordLength+1)
	if _, _, err := svc.CreateStaff(tenantCtx(1), req); !apperr.Is(err, apperr.TypeBadRequest) {
		t.Errorf("expected bad request for an overlong password, got %v", err)
	}
}

func TestUpdateStaff(t *testing.T) {
	svc := newTestService()
	dept := &Department{DepartmentName: "Cardiology"}
	svc.CreateDepartment(tenantCtx(1), dept)
	st, _, _ := svc.CreateStaff(tenantCtx(1), doctorRequest())

	updated, err := svc.UpdateStaff(tenantCtx(1), st.ID, &StaffUpdate{DepartmentID: int64Ptr(dept.ID)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != auth.RoleDoctor || *updated.DepartmentID != dept.ID {
		t.Errorf("unexpected staff after update: %+v", updated)
	}

	if _, err := svc.UpdateStaff(tenantCtx(1), st.ID, &StaffUpdate{Role: strPtr("")}); !apperr.Is(err, apperr.TypeBadRequest) {
		t.Errorf("expected bad request for blank role, got %v", err)
	}
	if _, err := svc.UpdateStaff(tenantCtx(2), st.ID, &StaffUpdate{Role: strPtr(auth.RoleNurse)}); !apperr.Is(err, apperr.TypeNotFound) {
		t.Errorf("expected not found from another hospital, got %v", err)
	}
}

func TestListStaff_Filters(t *testing.T) {
	svc := newTestService()
	svc.CreateStaff(tenantCtx(1), doctorRequest())
	nurse := doctorRequest()
	nurse.Email, nurse.Role = "nurse@example.test", auth.RoleNurse
	svc.CreateStaff(tenantCtx(1), nurse)

	doctors, err := svc.ListStaff(tenantCtx(1), StaffFilter{Role: auth.RoleDoctor}, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doctors) != 1 || doctors[0].Email != "ann@example.test" {
		t.Errorf("unexpected doctors %v", doctors)
	}
}

func TestStaffLogin(t *testing.T) {
	svc := newTestService()
	dept := &Department{DepartmentName: "Cardiology"}
	svc.CreateDepartment(tenantCtx(1), dept)
	req := doctorRequest()
	req.DepartmentID = &dept.ID
	st, password, _ := svc.CreateStaff(tenantCtx(1), req)

	token, err := svc.Login(context.Background(), &LoginRequest{Email: "ann@example.test", Password: password})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := testIssuer.Verify(token)
	if err != nil {
		t.Fatalf("token did not verify: %v", err)
	}
	if claims.StaffID == nil || *claims.StaffID != st.ID {
		t.Errorf("expected staffId %d, got %v", st.ID, claims.StaffID)
	}
	if claims.Role != auth.RoleDoctor || claims.HospitalID != 1 {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.DepartmentID == nil || *claims.DepartmentID != dept.ID {
		t.Errorf("expected department_id %d, got %v", dept.ID, claims.DepartmentID)
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining < 7*time.Hour || remaining > 8*time.Hour {
		t.Errorf("expected 8h expiry, got %s", remaining)
	}
}

func TestStaffLogin_Failures(t *testing.T) {
	svc := newTestService()
	svc.CreateStaff(tenantCtx(1), doctorRequest())

	for _, req := range []*LoginRequest{
		{Email: "ann@example.test", Password: "wrong-password"},
		{Email: "nobody@example.test", Password: "whatever"},
		{Email: "", Password: ""},
	} {
		_, err := svc.Login(context.Background(), req)
		ae, ok := apperr.As(err)
		if !ok || ae.Type != apperr.TypeBadRequest || ae.Message != "Invalid email or password" {
			t.Errorf("login %q: expected invalid credentials, got %v", req.Email, err)
		}
	}
}
