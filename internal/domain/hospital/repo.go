package hospital

import (
	"context"
)

// AdminRepository persists administrator accounts. Lookups are by email and
// are not tenant scoped.
type AdminRepository interface {
	Create(ctx context.Context, a *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	SetHospital(ctx context.Context, adminID, hospitalID int64) error
}

type HospitalRepository interface {
	Create(ctx context.Context, h *Hospital) error
	GetByID(ctx context.Context, id int64) (*Hospital, error)
	GetByAdmin(ctx context.Context, adminID int64) (*Hospital, error)
	Update(ctx context.Context, id int64, u *HospitalUpdate) (*Hospital, error)
}
