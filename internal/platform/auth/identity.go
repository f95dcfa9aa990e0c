package auth

import (
	"context"
	"time"
)

// Kind distinguishes the two account tables a token can be issued for.
type Kind string

const (
	KindAdmin Kind = "admin"
	KindStaff Kind = "staff"
)

// Identity is the verified caller attached to every authenticated request.
type Identity struct {
	SubjectID    int64
	Kind         Kind
	Role         string
	HospitalID   int64
	DepartmentID *int64
	TokenID      string
	ExpiresAt    time.Time
}

type contextKey string

const IdentityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(Identity)
	return id, ok
}

// RoleFromContext returns the caller's role, or "" when unauthenticated.
func RoleFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.Role
}
