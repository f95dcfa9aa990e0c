package identity

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

// PatientRepository defines the persistence interface for patients. Every
// method is scoped to a hospital.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Patient, error)
	List(ctx context.Context, hospitalID int64, f PatientFilter, page pagination.Params) ([]*Patient, error)
	Update(ctx context.Context, hospitalID, id int64, u *PatientUpdate) (*Patient, error)
	Delete(ctx context.Context, hospitalID, id int64) error
	ExistsByIdentity(ctx context.Context, hospitalID int64, firstName, lastName, dateOfBirth string) (bool, error)
}
