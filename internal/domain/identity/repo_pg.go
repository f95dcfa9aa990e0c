package identity

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

// uniqueIdentityConstraint guards (hospital, first name, last name, birth date).
const uniqueIdentityConstraint = "patients_identity_key"

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const patientColumns = `patient_id, hospital_id, first_name, last_name,
	to_char(date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
	EXTRACT(YEAR FROM age(date_of_birth))::int AS age,
	gender, contact_info, residence, insurance_id, emergency_contact, registration_date`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.HospitalID, &p.FirstName, &p.LastName,
		&p.DateOfBirth, &p.Age,
		&p.Gender, &p.ContactInfo, &p.Residence, &p.InsuranceID, &p.EmergencyContact, &p.RegistrationDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	created, err := scanPatient(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (
			hospital_id, first_name, last_name, date_of_birth, gender,
			contact_info, residence, insurance_id, emergency_contact
		) VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9)
		RETURNING `+patientColumns,
		p.HospitalID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender,
		p.ContactInfo, p.Residence, p.InsuranceID, p.EmergencyContact,
	))
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE patient_id = $1 AND hospital_id = $2`, id, hospitalID))
	return p, db.NotFound(err)
}

func listPatientsQuery(hospitalID int64, f PatientFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("patients"), "hospital_id", hospitalID).Select(goqu.L(patientColumns))
	if f.Name != "" {
		ds = ds.Where(goqu.Or(db.Contains("first_name", f.Name), db.Contains("last_name", f.Name)))
	}
	if f.Gender != "" {
		ds = ds.Where(goqu.I("gender").Eq(f.Gender))
	}
	if f.Age != nil {
		ds = ds.Where(goqu.L("EXTRACT(YEAR FROM age(date_of_birth))").Eq(*f.Age))
	}
	return db.Page(ds.Order(goqu.I("patient_id").Asc()), page)
}

func (r *patientRepoPG) List(ctx context.Context, hospitalID int64, f PatientFilter, page pagination.Params) ([]*Patient, error) {
	return db.Rows(ctx, r.conn(ctx), listPatientsQuery(hospitalID, f, page), scanPatient)
}

func (r *patientRepoPG) Update(ctx context.Context, hospitalID, id int64, u *PatientUpdate) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `
		UPDATE patients SET
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			date_of_birth = COALESCE($5::date, date_of_birth),
			gender = COALESCE($6, gender),
			contact_info = COALESCE($7, contact_info),
			residence = COALESCE($8, residence),
			insurance_id = COALESCE($9, insurance_id),
			emergency_contact = COALESCE($10, emergency_contact)
		WHERE patient_id = $1 AND hospital_id = $2
		RETURNING `+patientColumns,
		id, hospitalID,
		u.FirstName, u.LastName, u.DateOfBirth, u.Gender,
		u.ContactInfo, u.Residence, u.InsuranceID, u.EmergencyContact,
	))
	return p, db.NotFound(err)
}

func (r *patientRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE patient_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *patientRepoPG) ExistsByIdentity(ctx context.Context, hospitalID int64, firstName, lastName, dateOfBirth string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE hospital_id = $1 AND first_name = $2 AND last_name = $3 AND date_of_birth = $4::date
		)`, hospitalID, firstName, lastName, dateOfBirth).Scan(&exists)
	return exists, err
}
