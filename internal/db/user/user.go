package user

import (
	"context"
	"errors"
	"fmt"
	"time"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const (
	EMAIL_CONSTRAINT_NAME                = "user_email_idx"
	PASSWORD_RESET_TOKEN_CONSTRAINT_NAME = "user_password_reset_token_idx"
)

const userColumns = `u.id::text, u.name, u.email, u.mobile, u.image, u.role, u.password_hash,
	u.created_at, u.verified_at, u.password_reset_token, u.password_reset_token_issued_at`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) *PgxUserRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: conn}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	role := input.Role
	if role == "" {
		role = user.RoleStandard
	}
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" AS u (name, email, mobile, image, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		input.Mobile,
		string(input.Image),
		string(role),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)
	if db.IsUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	return u, err
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	uid, ok := parseID(id)
	if !ok {
		return u, user.ErrUserDoesNotExist
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" u WHERE u.id = $1`, uid)
	u, err = scanUser(row)
	return u, noRowsAs(err, user.ErrUserDoesNotExist)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" u WHERE u.email = $1`, string(email))
	u, err = scanUser(row)
	return u, noRowsAs(err, user.ErrUserDoesNotExist)
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrUserDoesNotExist
	}
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" u WHERE u.password_reset_token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	return u, noRowsAs(err, user.ErrUserDoesNotExist)
}

func (r *PgxUserRepository) Verify(ctx context.Context, id user.ID, at time.Time) (u user.User, err error) {
	uid, ok := parseID(id)
	if !ok {
		return u, user.ErrUserDoesNotExist
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" AS u SET verified_at = COALESCE(u.verified_at, $2)
		WHERE u.id = $1
		RETURNING `+userColumns,
		uid,
		at,
	)
	u, err = scanUser(row)
	return u, noRowsAs(err, user.ErrUserDoesNotExist)
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	id user.ID,
	token user.PasswordResetToken,
	at time.Time,
) error {
	uid, ok := parseID(id)
	if !ok {
		return user.ErrUserDoesNotExist
	}
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_reset_token = $2, password_reset_token_issued_at = $3 WHERE id = $1`,
		uid,
		string(token),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	uid, ok := parseID(id)
	if !ok {
		return user.ErrUserDoesNotExist
	}
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user"
		SET password_hash = $2, password_reset_token = NULL, password_reset_token_issued_at = NULL
		WHERE id = $1`,
		uid,
		string(password),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ResetPassword(
	ctx context.Context,
	id user.ID,
	token user.PasswordResetToken,
	password user.PasswordHash,
) error {
	uid, ok := parseID(id)
	if !ok || token == "" {
		return user.ErrInvalidPasswordResetToken
	}
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user"
		SET password_hash = $3, password_reset_token = NULL, password_reset_token_issued_at = NULL
		WHERE id = $1 AND password_reset_token = $2`,
		uid,
		string(token),
		string(password),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidPasswordResetToken
	}
	return nil
}

func (r *PgxUserRepository) UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (u user.User, err error) {
	uid, ok := parseID(input.ID)
	if !ok {
		return u, user.ErrUserDoesNotExist
	}
	image := pgtype.Text{Status: pgtype.Null}
	if input.Image.IsPresent {
		image = pgtype.Text{String: string(input.Image.Value), Status: pgtype.Present}
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" AS u
		SET name = $2, email = $3, mobile = $4, image = COALESCE($5, u.image)
		WHERE u.id = $1
		RETURNING `+userColumns,
		uid,
		input.Name,
		string(input.Email),
		input.Mobile,
		image,
	)
	u, err = scanUser(row)
	if db.IsUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	return u, noRowsAs(err, user.ErrUserDoesNotExist)
}

func parseID(id user.ID) (uuid.UUID, bool) {
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return uid, false
	}
	return uid, true
}

func noRowsAs(err error, target error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return target
	}
	return err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id, email, role, passwordHash string
		image                         string
		verifiedAt                    pgtype.Timestamptz
		resetToken                    pgtype.Text
		resetTokenIssuedAt            pgtype.Timestamptz
	)
	err = row.Scan(
		&id,
		&u.Name,
		&email,
		&u.Mobile,
		&image,
		&role,
		&passwordHash,
		&u.CreatedAt,
		&verifiedAt,
		&resetToken,
		&resetTokenIssuedAt,
	)
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.Image = user.ImageRef(image)
	u.Role = user.Role(role)
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.CreatedAt = u.CreatedAt.UTC()
	u.VerifiedAt = c.NewOptional(verifiedAt.Time.UTC(), verifiedAt.Status == pgtype.Present)
	u.PasswordResetToken = c.NewOptional(
		user.PasswordResetToken(resetToken.String),
		resetToken.Status == pgtype.Present,
	)
	u.PasswordResetTokenIssuedAt = c.NewOptional(
		resetTokenIssuedAt.Time.UTC(),
		resetTokenIssuedAt.Status == pgtype.Present,
	)
	if err := u.Validate(); err != nil {
		return u, fmt.Errorf("invalid user record: %w", err)
	}
	return u, nil
}
