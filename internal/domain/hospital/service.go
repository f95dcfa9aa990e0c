package hospital

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dval/hmis/internal/platform/auth"
	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/apperr"
	"github.com/dval/hmis/pkg/validate"
)

const (
	msgHospitalNotFound = "Hospital not found"
	msgEmailTaken       = "User with this email already exists"
	msgLoginFailed      = "Invalid credentials"
	msgPasswordTooLong  = "Password must be at most 72 bytes"
)

// AccountConfig carries the credential settings for administrator accounts.
type AccountConfig struct {
	BcryptCost int
	TokenTTL   time.Duration
}

type Service struct {
	admins    AdminRepository
	hospitals HospitalRepository
	tx        db.TxRunner
	tokens    auth.Issuer
	cfg       AccountConfig
}

func NewService(admins AdminRepository, hospitals HospitalRepository, tx db.TxRunner, tokens auth.Issuer, cfg AccountConfig) *Service {
	return &Service{admins: admins, hospitals: hospitals, tx: tx, tokens: tokens, cfg: cfg}
}

// Signup creates an administrator and their hospital in one transaction and
// returns a token scoped to the new hospital. If any step fails nothing is
// stored.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*SignupResult, error) {
	if validate.AnyBlank(req.FullName, req.Email, req.Password, req.HospitalName) {
		return nil, apperr.BadRequest("Missing required fields")
	}
	if len(req.Password) > auth.MaxPasswordLength {
		return nil, apperr.BadRequest(msgPasswordTooLong)
	}
	email := strings.TrimSpace(req.Email)
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = auth.RoleAdmin
	}
	if role != auth.RoleAdmin {
		return nil, apperr.BadRequest("role must be Admin")
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperr.BadRequest(msgEmailTaken)
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, apperr.Internal("check admin email", err)
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	admin := &Admin{
		FullName:      req.FullName,
		Email:         email,
		PasswordHash:  hash,
		NationalID:    req.NationalID,
		KRAPin:        req.KRAPin,
		ContactNumber: req.ContactNumber,
		Role:          role,
	}
	hosp := &Hospital{
		HospitalName:       req.HospitalName,
		RegistrationNumber: req.RegistrationNumber,
		Location:           req.Location,
		Type:               req.Type,
		ContactInfo:        req.ContactInfo,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.admins.Create(ctx, admin); err != nil {
			return err
		}
		hosp.AdminID = admin.ID
		if err := s.hospitals.Create(ctx, hosp); err != nil {
			return err
		}
		if err := s.admins.SetHospital(ctx, admin.ID, hosp.ID); err != nil {
			return err
		}
		admin.HospitalID = &hosp.ID
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, uniqueAdminEmailConstraint) {
			return nil, apperr.BadRequest(msgEmailTaken)
		}
		return nil, apperr.Internal("signup", err)
	}

	token, err := s.tokens.Issue(auth.Identity{
		SubjectID:  admin.ID,
		Kind:       auth.KindAdmin,
		Role:       admin.Role,
		HospitalID: hosp.ID,
	}, s.cfg.TokenTTL)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}

	return &SignupResult{
		Message:    "User and Hospital registered successfully",
		Token:      token,
		AdminID:    admin.ID,
		HospitalID: hosp.ID,
	}, nil
}

// Login checks administrator credentials and issues a token for the
// administrator's hospital.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, error) {
	if validate.AnyBlank(req.Email, req.Password) {
		return "", apperr.BadRequest(msgLoginFailed)
	}
	admin, err := s.admins.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, db.ErrNotFound) {
		return "", apperr.BadRequest(msgLoginFailed)
	}
	if err != nil {
		return "", apperr.Internal("find admin", err)
	}
	if !auth.VerifyPassword(admin.PasswordHash, req.Password) {
		return "", apperr.BadRequest(msgLoginFailed)
	}

	var hospitalID int64
	if admin.HospitalID != nil {
		hospitalID = *admin.HospitalID
	} else {
		h, err := s.hospitals.GetByAdmin(ctx, admin.ID)
		switch {
		case err == nil:
			hospitalID = h.ID
		case !errors.Is(err, db.ErrNotFound):
			return "", apperr.Internal("find admin hospital", err)
		}
	}

	token, err := s.tokens.Issue(auth.Identity{
		SubjectID:  admin.ID,
		Kind:       auth.KindAdmin,
		Role:       admin.Role,
		HospitalID: hospitalID,
	}, s.cfg.TokenTTL)
	if err != nil {
		return "", apperr.Internal("issue token", err)
	}
	return token, nil
}

// GetHospital returns the caller's own hospital. Any other id is reported as
// not found.
func (s *Service) GetHospital(ctx context.Context, id int64) (*Hospital, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if id != hospitalID {
		return nil, apperr.NotFound(msgHospitalNotFound)
	}
	h, err := s.hospitals.GetByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, msgHospitalNotFound, "get hospital")
	}
	return h, nil
}

// ListHospitals lists the hospitals visible to the caller, which is only
// their own.
func (s *Service) ListHospitals(ctx context.Context) ([]*Hospital, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	h, err := s.hospitals.GetByID(ctx, hospitalID)
	if errors.Is(err, db.ErrNotFound) {
		return []*Hospital{}, nil
	}
	if err != nil {
		return nil, apperr.Internal("list hospitals", err)
	}
	return []*Hospital{h}, nil
}

func (s *Service) UpdateHospital(ctx context.Context, id int64, u *HospitalUpdate) (*Hospital, error) {
	hospitalID, err := db.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	if id != hospitalID {
		return nil, apperr.NotFound(msgHospitalNotFound)
	}
	if validate.BlankPtr(u.HospitalName) {
		return nil, apperr.BadRequest("hospital_name cannot be empty")
	}
	h, err := s.hospitals.Update(ctx, id, u)
	if err != nil {
		return nil, db.Translate(err, msgHospitalNotFound, "update hospital")
	}
	return h, nil
}
