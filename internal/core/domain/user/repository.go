package user

import (
	"context"
	"time"
	c "ums/internal/core/domain/common"
)

type CreateUserInput struct {
	Name         string
	Email        c.Email
	Mobile       string
	Image        ImageRef
	Role         Role
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UpdateProfileInput struct {
	ID     ID
	Name   string
	Email  c.Email
	Mobile string
	Image  c.Optional[ImageRef]
}

// UserRepository addresses exactly one record per call. Mutations return
// ErrUserDoesNotExist when no record was affected.
type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken) (User, error)
	// Verify sets VerifiedAt if it is not set yet and returns the resulting user.
	Verify(ctx context.Context, id ID, at time.Time) (User, error)
	SetPasswordResetToken(ctx context.Context, id ID, token PasswordResetToken, at time.Time) error
	// SetPassword stores the new hash and clears any pending reset token.
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	// ResetPassword is SetPassword conditioned on token still being the stored reset
	// token. It returns ErrInvalidPasswordResetToken when it is not.
	ResetPassword(ctx context.Context, id ID, token PasswordResetToken, password PasswordHash) error
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (User, error)
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}
