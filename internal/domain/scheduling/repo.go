package scheduling

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, hospitalID, id int64) (*Appointment, error)
	List(ctx context.Context, hospitalID int64, f AppointmentFilter, page pagination.Params) ([]*AppointmentDetail, error)
	Update(ctx context.Context, hospitalID, id int64, ch *AppointmentChanges) (*Appointment, error)
	CheckOut(ctx context.Context, hospitalID, id int64) (*Appointment, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
