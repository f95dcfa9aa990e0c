package billing

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

type BillRepository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Bill, error)
	List(ctx context.Context, hospitalID int64, f BillFilter, page pagination.Params) ([]*Bill, error)
	Update(ctx context.Context, hospitalID, id int64, u *BillUpdate) (*Bill, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
