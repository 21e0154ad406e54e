package user

import "context"

// VerificationLinkSender delivers the link whose consumption marks the user verified.
type VerificationLinkSender interface {
	SendVerificationLink(ctx context.Context, user User) error
}
