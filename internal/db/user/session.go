package user

import (
	"context"
	"errors"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxSessionRepository struct {
	db db.DBTX
}

func NewPgxSessionRepository(conn db.DBTX) *PgxSessionRepository {
	if conn == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxSessionRepository{db: conn}
}

func (r *PgxSessionRepository) Create(ctx context.Context, input user.CreateSessionInput) error {
	uid, ok := parseID(input.UserID)
	if !ok {
		return user.ErrUserDoesNotExist
	}
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO session (token, user_id, created_at) VALUES ($1, $2, $3)`,
		string(input.Token),
		uid,
		input.CreatedAt,
	)
	return err
}

func (r *PgxSessionRepository) GetUserByToken(ctx context.Context, token user.SessionToken) (u user.User, err error) {
	if token == "" {
		return u, user.ErrSessionDoesNotExist
	}
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM session s JOIN "user" u ON u.id = s.user_id WHERE s.token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	return u, noRowsAs(err, user.ErrSessionDoesNotExist)
}

func (r *PgxSessionRepository) Delete(ctx context.Context, token user.SessionToken) (userID user.ID, err error) {
	var rawUserID string
	err = r.db.QueryRow(
		ctx,
		`DELETE FROM session WHERE token = $1 RETURNING user_id::text`,
		string(token),
	).Scan(&rawUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return userID, user.ErrSessionDoesNotExist
	}
	if err != nil {
		return userID, err
	}
	return user.ID(rawUserID), nil
}
