package diagnostics

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

type labTestRepoPG struct {
	pool *pgxpool.Pool
}

func NewLabTestRepo(pool *pgxpool.Pool) LabTestRepository {
	return &labTestRepoPG{pool: pool}
}

func (r *labTestRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const labTestColumns = `test_id, hospital_id, patient_id, test_name, test_type, requested_by, result, status, lab_technician_id, test_date`

func scanLabTest(row pgx.Row) (*LabTest, error) {
	var t LabTest
	err := row.Scan(&t.ID, &t.HospitalID, &t.PatientID, &t.TestName, &t.TestType, &t.RequestedBy,
		&t.Result, &t.Status, &t.LabTechnicianID, &t.TestDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *labTestRepoPG) Create(ctx context.Context, t *LabTest) error {
	created, err := scanLabTest(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO labtests (hospital_id, patient_id, test_name, test_type, requested_by, status)
		SELECT $1::bigint, $2::bigint, $3::varchar, $4::varchar, $5::bigint, 'Pending'
		WHERE EXISTS (SELECT 1 FROM patients WHERE patient_id = $2 AND hospital_id = $1)
		  AND EXISTS (SELECT 1 FROM staff WHERE staff_id = $5 AND hospital_id = $1)
		RETURNING `+labTestColumns,
		t.HospitalID, t.PatientID, t.TestName, t.TestType, t.RequestedBy,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	*t = *created
	return nil
}

func (r *labTestRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*LabTest, error) {
	t, err := scanLabTest(r.conn(ctx).QueryRow(ctx,
		`SELECT `+labTestColumns+` FROM labtests WHERE test_id = $1 AND hospital_id = $2`, id, hospitalID))
	return t, db.NotFound(err)
}

func listLabTestsQuery(hospitalID int64, f LabTestFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("labtests"), "hospital_id", hospitalID).Select(goqu.L(labTestColumns))
	if f.PatientID != nil {
		ds = ds.Where(goqu.I("patient_id").Eq(*f.PatientID))
	}
	if f.RequestedBy != nil {
		ds = ds.Where(goqu.I("requested_by").Eq(*f.RequestedBy))
	}
	if f.Status != "" {
		ds = ds.Where(goqu.I("status").Eq(f.Status))
	}
	if f.Day != "" {
		ds = ds.Where(db.OnDay("test_date", f.Day))
	}
	return db.Page(ds.Order(goqu.I("test_id").Asc()), page)
}

func (r *labTestRepoPG) List(ctx context.Context, hospitalID int64, f LabTestFilter, page pagination.Params) ([]*LabTest, error) {
	return db.Rows(ctx, r.conn(ctx), listLabTestsQuery(hospitalID, f, page), scanLabTest)
}

// Update records result fields and refreshes test_date. A technician must
// belong to the same hospital.
func (r *labTestRepoPG) Update(ctx context.Context, hospitalID, id int64, u *LabTestUpdate) (*LabTest, error) {
	t, err := scanLabTest(r.conn(ctx).QueryRow(ctx, `
		UPDATE labtests SET
			result = COALESCE($3::text, result),
			status = COALESCE($4::varchar, status),
			lab_technician_id = COALESCE($5::bigint, lab_technician_id),
			test_date = NOW()
		WHERE test_id = $1 AND hospital_id = $2
		  AND ($5::bigint IS NULL OR EXISTS (SELECT 1 FROM staff WHERE staff_id = $5 AND hospital_id = $2))
		RETURNING `+labTestColumns,
		id, hospitalID, u.Result, u.Status, u.LabTechnicianID,
	))
	if errors.Is(err, pgx.ErrNoRows) && u.LabTechnicianID != nil {
		if _, getErr := r.GetByID(ctx, hospitalID, id); getErr == nil {
			return nil, db.ErrInvalidReference
		}
	}
	return t, db.NotFound(err)
}

func (r *labTestRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM labtests WHERE test_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
