package admin

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

// DepartmentRepository defines the persistence interface for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Department, error)
	List(ctx context.Context, hospitalID int64, f DepartmentFilter, page pagination.Params) ([]*Department, error)
	Update(ctx context.Context, hospitalID, id int64, u *DepartmentUpdate) (*Department, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}

// StaffRepository defines the persistence interface for staff members.
// GetByEmail is not tenant scoped; it backs staff login.
type StaffRepository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Staff, error)
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	List(ctx context.Context, hospitalID int64, f StaffFilter, page pagination.Params) ([]*Staff, error)
	Update(ctx context.Context, hospitalID, id int64, u *StaffUpdate) (*Staff, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
