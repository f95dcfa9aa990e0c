package diagnostics

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

type LabTestRepository interface {
	Create(ctx context.Context, t *LabTest) error
	GetByID(ctx context.Context, hospitalID, id int64) (*LabTest, error)
	List(ctx context.Context, hospitalID int64, f LabTestFilter, page pagination.Params) ([]*LabTest, error)
	Update(ctx context.Context, hospitalID, id int64, u *LabTestUpdate) (*LabTest, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
