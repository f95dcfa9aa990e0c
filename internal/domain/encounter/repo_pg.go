package encounter

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

type consultationRepoPG struct {
	pool *pgxpool.Pool
}

func NewConsultationRepo(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepoPG{pool: pool}
}

func (r *consultationRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const consultationColumns = `consultation_id, hospital_id, patient_id, doctor_id, symptoms, diagnosis,
	treatment_plan, referred_from, referred_to, notes, status, consultation_date,
	to_char(follow_up_date, 'YYYY-MM-DD') AS follow_up_date, updated_at`

func scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation
	err := row.Scan(&c.ID, &c.HospitalID, &c.PatientID, &c.DoctorID, &c.Symptoms, &c.Diagnosis,
		&c.TreatmentPlan, &c.ReferredFrom, &c.ReferredTo, &c.Notes, &c.Status, &c.ConsultationDate,
		&c.FollowUpDate, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consultationRepoPG) Create(ctx context.Context, c *Consultation) error {
	created, err := scanConsultation(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultations (hospital_id, patient_id, doctor_id, symptoms, referred_from, referred_to, notes, status)
		SELECT $1::bigint, $2::bigint, $3::bigint, $4::text, $5::varchar, $6::varchar, $7::text, 'Pending'
		WHERE EXISTS (SELECT 1 FROM patients WHERE patient_id = $2 AND hospital_id = $1)
		  AND EXISTS (SELECT 1 FROM staff WHERE staff_id = $3 AND hospital_id = $1)
		RETURNING `+consultationColumns,
		c.HospitalID, c.PatientID, c.DoctorID, c.Symptoms, c.ReferredFrom, c.ReferredTo, c.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	*c = *created
	return nil
}

func (r *consultationRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Consultation, error) {
	c, err := scanConsultation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+consultationColumns+` FROM consultations WHERE consultation_id = $1 AND hospital_id = $2`, id, hospitalID))
	return c, db.NotFound(err)
}

func listConsultationsQuery(hospitalID int64, f ConsultationFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("consultations"), "hospital_id", hospitalID).Select(goqu.L(consultationColumns))
	if f.PatientID != nil {
		ds = ds.Where(goqu.I("patient_id").Eq(*f.PatientID))
	}
	if f.DoctorID != nil {
		ds = ds.Where(goqu.I("doctor_id").Eq(*f.DoctorID))
	}
	if f.Status != "" {
		ds = ds.Where(goqu.I("status").Eq(f.Status))
	}
	return db.Page(ds.Order(goqu.I("consultation_id").Asc()), page)
}

func (r *consultationRepoPG) List(ctx context.Context, hospitalID int64, f ConsultationFilter, page pagination.Params) ([]*Consultation, error) {
	return db.Rows(ctx, r.conn(ctx), listConsultationsQuery(hospitalID, f, page), scanConsultation)
}

func (r *consultationRepoPG) Update(ctx context.Context, hospitalID, id int64, u *ConsultationUpdate) (*Consultation, error) {
	c, err := scanConsultation(r.conn(ctx).QueryRow(ctx, `
		UPDATE consultations SET
			symptoms = COALESCE($3, symptoms),
			diagnosis = COALESCE($4, diagnosis),
			treatment_plan = COALESCE($5, treatment_plan),
			referred_from = COALESCE($6, referred_from),
			referred_to = COALESCE($7, referred_to),
			notes = COALESCE($8, notes),
			status = COALESCE($9, status),
			follow_up_date = COALESCE($10::date, follow_up_date),
			updated_at = NOW()
		WHERE consultation_id = $1 AND hospital_id = $2
		RETURNING `+consultationColumns,
		id, hospitalID,
		u.Symptoms, u.Diagnosis, u.TreatmentPlan, u.ReferredFrom, u.ReferredTo, u.Notes, u.Status, u.FollowUpDate,
	))
	return c, db.NotFound(err)
}

func (r *consultationRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM consultations WHERE consultation_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
