package admin

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
	"github.com/dval/hmis/pkg/pagination"
)

const uniqueStaffEmailConstraint = "staff_email_key"

// -- Department --

type deptRepoPG struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepo(pool *pgxpool.Pool) DepartmentRepository {
	return &deptRepoPG{pool: pool}
}

func (r *deptRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const deptColumns = `department_id, hospital_id, department_name, location`

func scanDepartment(row pgx.Row) (*Department, error) {
	var d Department
	if err := row.Scan(&d.ID, &d.HospitalID, &d.DepartmentName, &d.Location); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deptRepoPG) Create(ctx context.Context, d *Department) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO departments (hospital_id, department_name, location)
		VALUES ($1, $2, $3)
		RETURNING department_id`,
		d.HospitalID, d.DepartmentName, d.Location,
	).Scan(&d.ID)
}

func (r *deptRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Department, error) {
	d, err := scanDepartment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+deptColumns+` FROM departments WHERE department_id = $1 AND hospital_id = $2`, id, hospitalID))
	return d, db.NotFound(err)
}

func listDepartmentsQuery(hospitalID int64, f DepartmentFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("departments"), "hospital_id", hospitalID).Select(goqu.L(deptColumns))
	if f.Name != "" {
		ds = ds.Where(db.Contains("department_name", f.Name))
	}
	return db.Page(ds.Order(goqu.I("department_id").Asc()), page)
}

func (r *deptRepoPG) List(ctx context.Context, hospitalID int64, f DepartmentFilter, page pagination.Params) ([]*Department, error) {
	return db.Rows(ctx, r.conn(ctx), listDepartmentsQuery(hospitalID, f, page), scanDepartment)
}

func (r *deptRepoPG) Update(ctx context.Context, hospitalID, id int64, u *DepartmentUpdate) (*Department, error) {
	d, err := scanDepartment(r.conn(ctx).QueryRow(ctx, `
		UPDATE departments SET
			department_name = COALESCE($3::varchar, department_name),
			location = COALESCE($4::varchar, location)
		WHERE department_id = $1 AND hospital_id = $2
		RETURNING `+deptColumns,
		id, hospitalID, u.DepartmentName, u.Location,
	))
	return d, db.NotFound(err)
}

func (r *deptRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM departments WHERE department_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// -- Staff --

type staffRepoPG struct {
	pool *pgxpool.Pool
}

func NewStaffRepo(pool *pgxpool.Pool) StaffRepository {
	return &staffRepoPG{pool: pool}
}

func (r *staffRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const staffColumns = `staff_id, hospital_id, department_id, first_name, last_name, email, role,
	contact_info, employment_date`

func scanStaff(row pgx.Row) (*Staff, error) {
	var s Staff
	err := row.Scan(&s.ID, &s.HospitalID, &s.DepartmentID, &s.FirstName, &s.LastName, &s.Email, &s.Role,
		&s.ContactInfo, &s.EmploymentDate)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts s. A department_id outside the staff member's hospital
// yields db.ErrInvalidReference.
func (r *staffRepoPG) Create(ctx context.Context, s *Staff) error {
	created, err := scanStaff(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO staff (hospital_id, department_id, first_name, last_name, email, password_hash, role, contact_info)
		SELECT $1::bigint, $2::bigint, $3::varchar, $4::varchar, $5::varchar, $6::text, $7::varchar, $8::varchar
		WHERE $2::bigint IS NULL
		   OR EXISTS (SELECT 1 FROM departments WHERE department_id = $2 AND hospital_id = $1)
		RETURNING `+staffColumns,
		s.HospitalID, s.DepartmentID, s.FirstName, s.LastName, s.Email, s.PasswordHash, s.Role, s.ContactInfo,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	hash := s.PasswordHash
	*s = *created
	s.PasswordHash = hash
	return nil
}

func (r *staffRepoPG) GetByID(ctx context.Context, hospitalID, id int64) (*Staff, error) {
	s, err := scanStaff(r.conn(ctx).QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE staff_id = $1 AND hospital_id = $2`, id, hospitalID))
	return s, db.NotFound(err)
}

func (r *staffRepoPG) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	var s Staff
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+staffColumns+`, password_hash FROM staff WHERE email = $1`, email,
	).Scan(&s.ID, &s.HospitalID, &s.DepartmentID, &s.FirstName, &s.LastName, &s.Email, &s.Role,
		&s.ContactInfo, &s.EmploymentDate, &s.PasswordHash)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &s, nil
}

func listStaffQuery(hospitalID int64, f StaffFilter, page pagination.Params) *goqu.SelectDataset {
	ds := db.From(goqu.T("staff"), "hospital_id", hospitalID).Select(goqu.L(staffColumns))
	if f.Role != "" {
		ds = ds.Where(goqu.I("role").Eq(f.Role))
	}
	if f.DepartmentID != nil {
		ds = ds.Where(goqu.I("department_id").Eq(*f.DepartmentID))
	}
	return db.Page(ds.Order(goqu.I("staff_id").Asc()), page)
}

func (r *staffRepoPG) List(ctx context.Context, hospitalID int64, f StaffFilter, page pagination.Params) ([]*Staff, error) {
	return db.Rows(ctx, r.conn(ctx), listStaffQuery(hospitalID, f, page), scanStaff)
}

func (r *staffRepoPG) Update(ctx context.Context, hospitalID, id int64, u *StaffUpdate) (*Staff, error) {
	s, err := scanStaff(r.conn(ctx).QueryRow(ctx, `
		UPDATE staff SET
			role = COALESCE($3::varchar, role),
			department_id = COALESCE($4::bigint, department_id),
			contact_info = COALESCE($5::varchar, contact_info)
		WHERE staff_id = $1 AND hospital_id = $2
		  AND ($4::bigint IS NULL
		       OR EXISTS (SELECT 1 FROM departments WHERE department_id = $4 AND hospital_id = $2))
		RETURNING `+staffColumns,
		id, hospitalID, u.Role, u.DepartmentID, u.ContactInfo,
	))
	if errors.Is(err, pgx.ErrNoRows) && u.DepartmentID != nil {
		if _, getErr := r.GetByID(ctx, hospitalID, id); getErr == nil {
			return nil, db.ErrInvalidReference
		}
	}
	return s, db.NotFound(err)
}

func (r *staffRepoPG) Delete(ctx context.Context, hospitalID, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM staff WHERE staff_id = $1 AND hospital_id = $2`, id, hospitalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
