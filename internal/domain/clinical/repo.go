package clinical

import (
	"context"

	"github.com/dval/hmis/pkg/pagination"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	GetByID(ctx context.Context, hospitalID, id int64) (*MedicalRecord, error)
	List(ctx context.Context, hospitalID int64, f RecordFilter, page pagination.Params) ([]*MedicalRecord, error)
	Update(ctx context.Context, hospitalID, id int64, e *Entry) (*MedicalRecord, error)
	Delete(ctx context.Context, hospitalID, id int64) error
}
