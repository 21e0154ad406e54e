package user

import (
	"context"
	"time"

	"github.com/golang-module/carbon/v2"
)

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

type PasswordResetLinkSender interface {
	SendPasswordResetLink(ctx context.Context, user User, token PasswordResetToken) error
}

func IsPasswordResetTokenExpired(issuedAt time.Time, now time.Time, validFor time.Duration) bool {
	if validFor <= 0 {
		return false
	}
	expiresAt := carbon.Time2Carbon(issuedAt).AddSeconds(int(validFor.Seconds()))
	return expiresAt.Lt(carbon.Time2Carbon(now))
}
