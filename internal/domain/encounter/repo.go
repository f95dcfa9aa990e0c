package encounter

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

type ConsultationRepository interface {
	Create(ctx context.Context, c *Consultation) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Consultation, error)
	List(ctx context.Context, hospitalID int64, f ConsultationFilter, page pagination.Params) ([]*Consultation, error)
	Update(ctx context.Context, hospitalID, id int64, u *ConsultationUpdate) (*Consultation, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
