package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/pagination"
	"github.com/dval/hmis/pkg/validate"
)

const (
	msgDepartmentNotFound = "Department not found"
	msgStaffNotFound      = "Staff member not found"
	msgStaffEmailTaken    = "Staff member with this email already exists"
	msgStaffLoginFailed   = "Invalid email or password"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
)

// StaffConfig carries the credential settings for staff accounts.
type StaffConfig struct {
	BcryptCost int
	TokenTTL   time.Duration
}

type Service struct {
	depts  DepartmentRepository
	staff  StaffRepository
	tokens auth.Issuer
	cfg    StaffConfig
}

func NewService(depts DepartmentRepository, staff StaffRepository, tokens auth.Issuer, cfg StaffConfig) *Service {
	return &Service{depts: depts, staff: staff, tokens: tokens, cfg: cfg}
}

// -- Department --

func (s *Service) CreateDepartment(ctx context.Context, d *Department) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	if validate.Blank(d.DepartmentName) {
		return apperr.BadRequest("Department name is required")
	}
	d.ID = 0
	d.HospitalID = hospitalID
	if err := s.depts.Create(ctx, d); err != nil {
		return apperr.Internal("create department", err)
	}
	return nil
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.depts.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgDepartmentNotFound, "get department")
	}
	return d, nil
}

func (s *Service) ListDepartments(ctx context.Context, f DepartmentFilter, page pagination.Params) ([]*Department, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.depts.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list departments", err)
	}
	if list == nil {
		list = []*Department{}
	}
	return list, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, u *DepartmentUpdate) (*Department, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.DepartmentName) {
		return nil, apperr.BadRequest("Department name is required")
	}
	d, err := s.depts.Update(ctx, hospitalID, id, u)
	if err != nil {
		return nil, db.Translate(err, msgDepartmentNotFound, "update department")
	}
	return d, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	return db.TranslateDelete(s.depts.Delete(ctx, hospitalID, id), msgDepartmentNotFound, "delete department")
}

// -- Staff --

// CreateStaff adds a staff member to the caller's hospital and returns the
// plaintext password that was hashed for the account.
func (s *Service) CreateStaff(ctx context.Context, req *CreateStaffRequest) (*Staff, string, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, "", err
	}
	if validate.AnyBlank(req.FirstName, req.LastName, req.Email, req.Role) {
		return nil, "", apperr.BadRequest("Missing required fields")
	}

	if len(req.Password) > auth.MaxPasswordLength {
		return nil, "", apperr.BadRequest(msgPasswordTooLong)
	}

	password := req.Password
	if password == "" {
		if password, err = auth.GenerateTempPassword(); err != nil {
			return nil, "", apperr.Internal("generate password", err)
		}
	}
	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", apperr.Internal("hash password", err)
	}

	st := &Staff{
		HospitalID:   hospitalID,
		DepartmentID: req.DepartmentID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.TrimSpace(req.Email),
		Role:         req.Role,
		ContactInfo:  req.ContactInfo,
		PasswordHash: hash,
	}
	if err := s.staff.Create(ctx, st); err != nil {
		if db.IsUniqueViolation(err, uniqueStaffEmailConstraint) {
			return nil, "", apperr.Conflict(msgStaffEmailTaken)
		}
		return nil, "", db.Translate(err, msgStaffNotFound, "create staff")
	}
	return st, password, nil
}

func (s *Service) GetStaff(ctx context.Context, id int64) (*Staff, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.staff.GetByID(ctx, hospitalID, id)
	if err != nil {
		return nil, db.Translate(err, msgStaffNotFound, "get staff")
	}
	return st, nil
}

func (s *Service) ListStaff(ctx context.Context, f StaffFilter, page pagination.Params) ([]*Staff, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.staff.List(ctx, hospitalID, f, page)
	if err != nil {
		return nil, apperr.Internal("list staff", err)
	}
	if list == nil {
		list = []*Staff{}
	}
	return list, nil
}

func (s *Service) UpdateStaff(ctx context.Context, id int64, u *StaffUpdate) (*Staff, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if validate.BlankPtr(u.Role) {
		return nil, apperr.BadRequest("role cannot be empty")
	}
	st, err := s.staff.Update(ctx, hospitalID, id, u)
	if err != nil {
		return nil, db.Translate(err, msgStaffNotFound, "update staff")
	}
	return st, nil
}

// DeleteStaff removes a staff member. Members still named as the doctor or
// requester of clinical rows cannot be removed.
func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return err
	}
	err = s.staff.Delete(ctx, hospitalID, id)
	if db.IsForeignKeyViolation(err) {
		return apperr.Conflict("Staff member is still referenced by clinical records")
	}
	return db.TranslateDelete(err, msgStaffNotFound, "delete staff")
}

// Login checks staff credentials and issues a staff token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, error) {
	if validate.AnyBlank(req.Email, req.Password) {
		return "", apperr.BadRequest(msgStaffLoginFailed)
	}
	st, err := s.staff.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", apperr.BadRequest(msgStaffLoginFailed)
		}
		return "", apperr.Internal("find staff", err)
	}
	if !auth.VerifyPassword(st.PasswordHash, req.Password) {
		return "", apperr.BadRequest(msgStaffLoginFailed)
	}

	token, err := s.tokens.Issue(auth.Identity{
		SubjectID:    st.ID,
		Kind:         auth.KindStaff,
		Role:         st.Role,
		HospitalID:   st.HospitalID,
		DepartmentID: st.DepartmentID,
	}, s.cfg.TokenTTL)
	if err != nil {
		return "", apperr.Internal("issue token", err)
	}
	return token, nil
}
