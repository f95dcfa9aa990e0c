package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers bad signatures, wrong algorithms, malformed tokens
// and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload. Administrator tokens carry userId, staff
// tokens carry staffId and department_id.
type Claims struct {
	jwt.RegisteredClaims
	UserID       *int64 `json:"userId,omitempty"`
	StaffID      *int64 `json:"staffId,omitempty"`
	Role         string `json:"role"`
	HospitalID   int64  `json:"hospital_id"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

// Identity converts verified claims into the request identity.
func (c *Claims) Identity() Identity {
	id := Identity{
		Role:         c.Role,
		HospitalID:   c.HospitalID,
		DepartmentID: c.DepartmentID,
		TokenID:      c.ID,
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	switch {
	case c.StaffID != nil:
		id.Kind = KindStaff
		id.SubjectID = *c.StaffID
	case c.UserID != nil:
		id.Kind = KindAdmin
		id.SubjectID = *c.UserID
	}
	return id
}

// Issuer is what account services need to hand out tokens.
type Issuer interface {
	Issue(id Identity, ttl time.Duration) (string, error)
}

// TokenIssuer signs and verifies HS256 tokens with a single secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret []byte) *TokenIssuer {
	return &TokenIssuer{secret: secret, now: time.Now}
}

// Issue signs a token for id that expires after ttl.
func (t *TokenIssuer) Issue(id Identity, ttl time.Duration) (string, error) {
	now := t.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:       id.Role,
		HospitalID: id.HospitalID,
	}

	subject := id.SubjectID
	switch id.Kind {
	case KindStaff:
		claims.StaffID = &subject
		claims.DepartmentID = id.DepartmentID
	case KindAdmin:
		claims.UserID = &subject
	default:
		return "", fmt.Errorf("unknown identity kind %q", id.Kind)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenStr and checks its signature and expiry.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == nil && claims.StaffID == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
