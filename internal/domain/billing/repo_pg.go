package billing

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

type billRepoPG struct {
	pool *pgxpool.Pool
}

func NewBillRepo(pool *pgxpool.Pool) BillRepository {
	return &billRepoPG{pool: pool}
}

func (r *billRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const billColumns = `billing_id, hospital_id, patient_id, doctor_id, service_type, service_id,
	amount_due::float8, status, billing_date`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.HospitalID, &b.PatientID, &b.DoctorID, &b.ServiceType, &b.ServiceID,
		&b.AmountDue, &b.Status, &b.BillingDate)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *billRepoPG) Create(ctx context.Context, b *Bill) error {
	created, err := scanBill(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO billing (hospital_id, patient_id, doctor_id, service_type, service_id, amount_due, status)
		SELECT $1::bigint, $2::bigint, $3::bigint, $4::varchar, $5::bigint, $6::numeric, 'Pending'
		WHERE EXISTS (SELECT 1 FROM patients WHERE patient_id = $2 AND hospital_id = $1)
		  AND EXISTS (SELECT 1 FROM staff WHERE staff_id = $3 AND hospital_id = $1)
		RETURNING `+billColumns,
		b.HospitalID, b.PatientID, b.DoctorID, b.ServiceType, b.ServiceID, b.AmountDue,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	*b = *created
	return nil
}

func (r *billRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Bill, error) {
	b, err := scanBill(r.conn(ctx).QueryRow(ctx,
		`SELECT `+billColumns+` FROM billing WHERE billing_id = $1 AND hospital_id = $2`, id, hospitalID))
	return b, db.NotFound(err)
}

func listBillsQuery(hospitalID int64, f BillFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("billing"), "hospital_id", hospitalID).Select(goqu.L(billColumns))
	if f.PatientID != nil {
		ds = ds.Where(goqu.I("patient_id").Eq(*f.PatientID))
	}
	if f.DoctorID != nil {
		ds = ds.Where(goqu.I("doctor_id").Eq(*f.DoctorID))
	}
	if f.Status != "" {
		ds = ds.Where(goqu.I("status").Eq(f.Status))
	}
	if f.Day != "" {
		ds = ds.Where(db.OnDay("billing_date", f.Day))
	}
	return db.Page(ds.Order(goqu.I("billing_id").Asc()), page)
}

func (r *billRepoPG) List(ctx context.Context, hospitalID int64, f BillFilter, page pagination.Params) ([]*Bill, error) {
	return db.Rows(ctx, r.conn(ctx), listBillsQuery(hospitalID, f, page), scanBill)
}

func (r *billRepoPG) Update(ctx context.Context, hospitalID, id int64, u *BillUpdate) (*Bill, error) {
	b, err := scanBill(r.conn(ctx).QueryRow(ctx, `
		UPDATE billing SET
			status = COALESCE($3::varchar, status),
			amount_due = COALESCE($4::numeric, amount_due),
			service_type = COALESCE($5::varchar, service_type)
		WHERE billing_id = $1 AND hospital_id = $2
		RETURNING `+billColumns,
		id, hospitalID, u.Status, u.AmountDue, u.ServiceType,
	))
	return b, db.NotFound(err)
}

func (r *billRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM billing WHERE billing_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
