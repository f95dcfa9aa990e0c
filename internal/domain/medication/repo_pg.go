package medication

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

type prescriptionRepoPG struct {
	pool *pgxpool.Pool
}

func NewPrescriptionRepo(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const prescriptionColumns = `prescription_id, hospital_id, patient_id, consultation_id, doctor_id,
	medication_name, dosage, frequency, duration, instructions, status, prescribed_date`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.HospitalID, &p.PatientID, &p.ConsultationID, &p.DoctorID,
		&p.MedicationName, &p.Dosage, &p.Frequency, &p.Duration, &p.Instructions, &p.Status, &p.PrescribedDate)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create requires the consultation to belong to the same patient and
// hospital, and the doctor to belong to the hospital.
func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	created, err := scanPrescription(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescriptions (
			hospital_id, patient_id, consultation_id, doctor_id,
			medication_name, dosage, frequency, duration, instructions, status
		)
		SELECT $1::bigint, $2::bigint, $3::bigint, $4::bigint,
			$5::varchar, $6::varchar, $7::varchar, $8::varchar, $9::text, 'Active'
		WHERE EXISTS (SELECT 1 FROM consultations WHERE consultation_id = $3 AND patient_id = $2 AND hospital_id = $1)
		  AND EXISTS (SELECT 1 FROM staff WHERE staff_id = $4 AND hospital_id = $1)
		RETURNING `+prescriptionColumns,
		p.HospitalID, p.PatientID, p.ConsultationID, p.DoctorID,
		p.MedicationName, p.Dosage, p.Frequency, p.Duration, p.Instructions,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Prescription, error) {
	p, err := scanPrescription(r.conn(ctx).QueryRow(ctx,
		`SELECT `+prescriptionColumns+` FROM prescriptions WHERE prescription_id = $1 AND hospital_id = $2`, id, hospitalID))
	return p, db.NotFound(err)
}

func listPrescriptionsQuery(hospitalID int64, f PrescriptionFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("prescriptions"), "hospital_id", hospitalID).Select(goqu.L(prescriptionColumns))
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
		ds = ds.Where(db.OnDay("prescribed_date", f.Day))
	}
	return db.Page(ds.Order(goqu.I("prescription_id").Asc()), page)
}

func (r *prescriptionRepoPG) List(ctx context.Context, hospitalID int64, f PrescriptionFilter, page pagination.Params) ([]*Prescription, error) {
	return db.Rows(ctx, r.conn(ctx), listPrescriptionsQuery(hospitalID, f, page), scanPrescription)
}

func (r *prescriptionRepoPG) Update(ctx context.Context, hospitalID, id int64, u *PrescriptionUpdate) (*Prescription, error) {
	p, err := scanPrescription(r.conn(ctx).QueryRow(ctx, `
		UPDATE prescriptions SET
			status = COALESCE($3::varchar, status),
			dosage = COALESCE($4::varchar, dosage),
			frequency = COALESCE($5::varchar, frequency),
			duration = COALESCE($6::varchar, duration),
			instructions = COALESCE($7::text, instructions)
		WHERE prescription_id = $1 AND hospital_id = $2
		RETURNING `+prescriptionColumns,
		id, hospitalID, u.Status, u.Dosage, u.Frequency, u.Duration, u.Instructions,
	))
	return p, db.NotFound(err)
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescriptions WHERE prescription_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
