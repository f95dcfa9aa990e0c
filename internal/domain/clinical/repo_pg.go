package clinical

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

type recordRepoPG struct {
	pool *pgxpool.Pool
}

func NewMedicalRecordRepo(pool *pgxpool.Pool) MedicalRecordRepository {
	return &recordRepoPG{pool: pool}
}

func (r *recordRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const recordColumns = `record_id, hospital_id, patient_id, doctor_id, diagnosis, treatment, prescription,
	weight::float8, blood_pressure, temperature::float8, heart_rate, notes, record_date, updated_at`

func scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var m MedicalRecord
	err := row.Scan(&m.ID, &m.HospitalID, &m.PatientID, &m.DoctorID, &m.Diagnosis, &m.Treatment, &m.Prescription,
		&m.Weight, &m.BloodPressure, &m.Temperature, &m.HeartRate, &m.Notes, &m.RecordDate, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *recordRepoPG) Create(ctx context.Context, m *MedicalRecord) error {
	created, err := scanRecord(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medicalrecords (
			hospital_id, patient_id, doctor_id, diagnosis, treatment, prescription,
			weight, blood_pressure, temperature, heart_rate, notes
		)
		SELECT $1::bigint, $2::bigint, $3::bigint, $4::text, $5::text, $6::text,
			$7::numeric, $8::varchar, $9::numeric, $10::int, $11::text
		WHERE EXISTS (SELECT 1 FROM patients WHERE patient_id = $2 AND hospital_id = $1)
		  AND EXISTS (SELECT 1 FROM staff WHERE staff_id = $3 AND hospital_id = $1)
		RETURNING `+recordColumns,
		m.HospitalID, m.PatientID, m.DoctorID, m.Diagnosis, m.Treatment, m.Prescription,
		m.Weight, m.BloodPressure, m.Temperature, m.HeartRate, m.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	*m = *created
	return nil
}

func (r *recordRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*MedicalRecord, error) {
	m, err := scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+recordColumns+` FROM medicalrecords WHERE record_id = $1 AND hospital_id = $2`, id, hospitalID))
	return m, db.NotFound(err)
}

func listRecordsQuery(hospitalID int64, f RecordFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("medicalrecords"), "hospital_id", hospitalID).Select(goqu.L(recordColumns))
	if f.PatientID != nil {
		ds = ds.Where(goqu.I("patient_id").Eq(*f.PatientID))
	}
	if f.DoctorID != nil {
		ds = ds.Where(goqu.I("doctor_id").Eq(*f.DoctorID))
	}
	if f.Day != "" {
		ds = ds.Where(db.OnDay("record_date", f.Day))
	}
	return db.Page(ds.Order(goqu.I("record_id").Asc()), page)
}

func (r *recordRepoPG) List(ctx context.Context, hospitalID int64, f RecordFilter, page pagination.Params) ([]*MedicalRecord, error) {
	return db.Rows(ctx, r.conn(ctx), listRecordsQuery(hospitalID, f, page), scanRecord)
}

func (r *recordRepoPG) Update(ctx context.Context, hospitalID, id int64, e *Entry) (*MedicalRecord, error) {
	m, err := scanRecord(r.conn(ctx).QueryRow(ctx, `
		UPDATE medicalrecords SET
			diagnosis = COALESCE($3::text, diagnosis),
			treatment = COALESCE($4::text, treatment),
			prescription = COALESCE($5::text, prescription),
			weight = COALESCE($6::numeric, weight),
			blood_pressure = COALESCE($7::varchar, blood_pressure),
			temperature = COALESCE($8::numeric, temperature),
			heart_rate = COALESCE($9::int, heart_rate),
			notes = COALESCE($10::text, notes),
			updated_at = NOW()
		WHERE record_id = $1 AND hospital_id = $2
		RETURNING `+recordColumns,
		id, hospitalID,
		e.Diagnosis, e.Treatment, e.Prescription, e.Weight, e.BloodPressure, e.Temperature, e.HeartRate, e.Notes,
	))
	return m, db.NotFound(err)
}

func (r *recordRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicalrecords WHERE record_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
