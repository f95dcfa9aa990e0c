package scheduling

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepo(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const appointmentColumns = `appointment_id, hospital_id, patient_id, doctor_id, appointment_date, status, check_in_time, check_out_time`

const appointmentDetailColumns = `a.appointment_id, a.hospital_id, a.patient_id, a.doctor_id, a.appointment_date,
	a.status, a.check_in_time, a.check_out_time,
	p.first_name || ' ' || p.last_name AS patient_name,
	s.first_name || ' ' || s.last_name AS doctor_name,
	d.department_name`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.HospitalID, &a.PatientID, &a.DoctorID, &a.AppointmentDate,
		&a.Status, &a.CheckInTime, &a.CheckOutTime)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAppointmentDetail(row pgx.Row) (*AppointmentDetail, error) {
	var a AppointmentDetail
	err := row.Scan(&a.ID, &a.HospitalID, &a.PatientID, &a.DoctorID, &a.AppointmentDate,
		&a.Status, &a.CheckInTime, &a.CheckOutTime,
		&a.PatientName, &a.DoctorName, &a.DepartmentName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the appointment only when both the patient and the doctor
// belong to the same hospital.
func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	created, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (hospital_id, patient_id, doctor_id, appointment_date, status, check_in_time)
		SELECT $1::bigint, $2::bigint, $3::bigint, $4::timestamptz, 'Scheduled', NOW()
		WHERE EXISTS (SELECT 1 FROM patients WHERE patient_id = $2 AND hospital_id = $1)
		  AND EXISTS (SELECT 1 FROM staff WHERE staff_id = $3 AND hospital_id = $1)
		RETURNING `+appointmentColumns,
		a.HospitalID, a.PatientID, a.DoctorID, a.AppointmentDate,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	*a = *created
	return nil
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE appointment_id = $1 AND hospital_id = $2`, id, hospitalID))
	return a, db.NotFound(err)
}

func listAppointmentsQuery(hospitalID int64, f AppointmentFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("appointments").As("a"), "a.hospital_id", hospitalID).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.patient_id").Eq(goqu.I("a.patient_id")))).
		Join(goqu.T("staff").As("s"), goqu.On(goqu.I("s.staff_id").Eq(goqu.I("a.doctor_id")))).
		LeftJoin(goqu.T("departments").As("d"), goqu.On(goqu.I("d.department_id").Eq(goqu.I("s.department_id")))).
		Select(goqu.L(appointmentDetailColumns))

	if f.DoctorID != nil {
		ds = ds.Where(goqu.I("a.doctor_id").Eq(*f.DoctorID))
	}
	if f.PatientID != nil {
		ds = ds.Where(goqu.I("a.patient_id").Eq(*f.PatientID))
	}
	if f.Day != "" {
		ds = ds.Where(db.OnDay("a.appointment_date", f.Day))
	}
	if f.Status != "" {
		ds = ds.Where(goqu.I("a.status").Eq(f.Status))
	}
	return db.Page(ds.Order(goqu.I("a.appointment_id").Asc()), page)
}

func (r *appointmentRepoPG) List(ctx context.Context, hospitalID int64, f AppointmentFilter, page pagination.Params) ([]*AppointmentDetail, error) {
	return db.Rows(ctx, r.conn(ctx), listAppointmentsQuery(hospitalID, f, page), scanAppointmentDetail)
}

// Update applies a partial update. Moving to Completed stamps check_out_time
// unless it is already set. A new doctor must belong to the same hospital.
func (r *appointmentRepoPG) Update(ctx context.Context, hospitalID, id int64, ch *AppointmentChanges) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `
		UPDATE appointments SET
			doctor_id = COALESCE($3::bigint, doctor_id),
			appointment_date = COALESCE($4::timestamptz, appointment_date),
			status = COALESCE($5::varchar, status),
			check_out_time = CASE
				WHEN COALESCE($5::varchar, status) = 'Completed' THEN COALESCE(check_out_time, NOW())
				ELSE check_out_time
			END
		WHERE appointment_id = $1 AND hospital_id = $2
		  AND ($3::bigint IS NULL OR EXISTS (SELECT 1 FROM staff WHERE staff_id = $3 AND hospital_id = $2))
		RETURNING `+appointmentColumns,
		id, hospitalID, ch.DoctorID, ch.AppointmentDate, ch.Status,
	))
	if errors.Is(err, pgx.ErrNoRows) && ch.DoctorID != nil {
		if _, getErr := r.GetByID(ctx, hospitalID, id); getErr == nil {
			return nil, db.ErrInvalidReference
		}
	}
	return a, db.NotFound(err)
}

func (r *appointmentRepoPG) CheckOut(ctx context.Context, hospitalID, id int64) (*Appointment, error) {
	a, err := scanAppointment(r.conn(ctx).QueryRow(ctx, `
		UPDATE appointments SET check_out_time = NOW(), status = 'Completed'
		WHERE appointment_id = $1 AND hospital_id = $2
		RETURNING `+appointmentColumns, id, hospitalID))
	return a, db.NotFound(err)
}

func (r *appointmentRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE appointment_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
