package hospital

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dval/hmis/internal/platform/db"
)

const uniqueAdminEmailConstraint = "admin_email_key"

// -- Admin --

type adminRepoPG struct {
	pool *pgxpool.Pool
}

func NewAdminRepo(pool *pgxpool.Pool) AdminRepository {
	return &adminRepoPG{pool: pool}
}

func (r *adminRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

func (r *adminRepoPG) Create(ctx context.Context, a *Admin) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO admin (full_name, email, password_hash, national_id, kra_pin, contact_number, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING admin_id, registration_date`,
		a.FullName, a.Email, a.PasswordHash, a.NationalID, a.KRAPin, a.ContactNumber, a.Role,
	).Scan(&a.ID, &a.RegistrationDate)
}

func (r *adminRepoPG) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT admin_id, full_name, email, password_hash, national_id, kra_pin, contact_number,
			role, hospital_id, registration_date
		FROM admin WHERE email = $1`, email,
	).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.NationalID, &a.KRAPin, &a.ContactNumber,
		&a.Role, &a.HospitalID, &a.RegistrationDate)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &a, nil
}

func (r *adminRepoPG) SetHospital(ctx context.Context, adminID, hospitalID int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE admin SET hospital_id = $1 WHERE admin_id = $2`, hospitalID, adminID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// -- Hospital --

type hospitalRepoPG struct {
	pool *pgxpool.Pool
}

func NewHospitalRepo(pool *pgxpool.Pool) HospitalRepository {
	return &hospitalRepoPG{pool: pool}
}

func (r *hospitalRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const hospitalColumns = `hospital_id, hospital_name, registration_number, location, type, contact_info,
	admin_id, created_at`

func scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	err := row.Scan(&h.ID, &h.HospitalName, &h.RegistrationNumber, &h.Location, &h.Type, &h.ContactInfo,
		&h.AdminID, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepoPG) Create(ctx context.Context, h *Hospital) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO hospital (hospital_name, registration_number, location, type, contact_info, admin_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING hospital_id, created_at`,
		h.HospitalName, h.RegistrationNumber, h.Location, h.Type, h.ContactInfo, h.AdminID,
	).Scan(&h.ID, &h.CreatedAt)
}

func (r *hospitalRepoPG) GetByID(ctx context.Context, id int64) (*Hospital, error) {
	h, err := scanHospital(r.conn(ctx).QueryRow(ctx,
		`SELECT `+hospitalColumns+` FROM hospital WHERE hospital_id = $1`, id))
	return h, db.NotFound(err)
}

func (r *hospitalRepoPG) GetByAdmin(ctx context.Context, adminID int64) (*Hospital, error) {
	h, err := scanHospital(r.conn(ctx).QueryRow(ctx,
		`SELECT `+hospitalColumns+` FROM hospital WHERE admin_id = $1`, adminID))
	return h, db.NotFound(err)
}

func (r *hospitalRepoPG) Update(ctx context.Context, id int64, u *HospitalUpdate) (*Hospital, error) {
	h, err := scanHospital(r.conn(ctx).QueryRow(ctx, `
		UPDATE hospital SET
			hospital_name = COALESCE($2::varchar, hospital_name),
			location = COALESCE($3::varchar, location),
			type = COALESCE($4::varchar, type),
			contact_info = COALESCE($5::varchar, contact_info)
		WHERE hospital_id = $1
		RETURNING `+hospitalColumns,
		id, u.HospitalName, u.Location, u.Type, u.ContactInfo,
	))
	return h, db.NotFound(err)
}
