package medication

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Prescription, error)
	List(ctx context.Context, hospitalID int64, f PrescriptionFilter, page pagination.Params) ([]*Prescription, error)
	Update(ctx context.Context, hospitalID, id int64, u *PrescriptionUpdate) (*Prescription, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
