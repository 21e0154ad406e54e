package user

import (
	"crypto/subtle"
	"fmt"
	"time"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"unicode/utf8"
)

type ID string

func (id ID) IsZero() bool {
	return id == ""
}

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleStandard || r == RoleAdmin
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

const (
	MIN_PASSWORD_LEN = 6
	MAX_PASSWORD_LEN = 256
)

func (p RawPassword) String() string {
	return "***"
}

// Validate applies the password policy shared by registration, reset and change.
// Length is counted in characters.
func (p RawPassword) Validate() error {
	n := utf8.RuneCountInString(string(p))
	switch {
	case n == 0:
		return ErrPasswordRequired
	case n < MIN_PASSWORD_LEN:
		return ErrPasswordTooShort
	case n > MAX_PASSWORD_LEN:
		return ErrPasswordTooLong
	}
	return nil
}

type SessionToken string

// User is a registered account. VerifiedAt is set exactly once and never cleared.
// PasswordResetToken is present only between a reset request and its consumption.
type User struct {
	ID                         ID
	Name                       string
	Email                      c.Email
	Mobile                     string
	Image                      ImageRef
	Role                       Role
	PasswordHash               PasswordHash
	CreatedAt                  time.Time
	VerifiedAt                 c.Optional[time.Time]
	PasswordResetToken         c.Optional[PasswordResetToken]
	PasswordResetTokenIssuedAt c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.ID.IsZero() {
		return e.NewInvalidStateError("user ID is not set")
	}
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %s", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %s", u.ID))
	}
	if !u.Role.IsValid() {
		return e.NewInvalidStateError(fmt.Sprintf("invalid role %q for user %s", u.Role, u.ID))
	}
	if u.PasswordResetToken.IsPresent != u.PasswordResetTokenIssuedAt.IsPresent {
		return e.NewInvalidStateError(fmt.Sprintf("password reset token issue time mismatch for user %s", u.ID))
	}
	return nil
}

func (u *User) IsVerified() bool {
	return u.VerifiedAt.IsPresent
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPasswordResetToken reports whether token is the pending reset token of the user
// and has not outlived validFor. Zero validFor means the token never expires.
func (u *User) HasPasswordResetToken(token PasswordResetToken, now time.Time, validFor time.Duration) bool {
	if !u.PasswordResetToken.IsPresent || token == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(u.PasswordResetToken.Value), []byte(token)) != 1 {
		return false
	}
	return !IsPasswordResetTokenExpired(u.PasswordResetTokenIssuedAt.Value, now, validFor)
}
