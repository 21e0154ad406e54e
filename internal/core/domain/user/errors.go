package user

import (
	"errors"
	e "ums/internal/core/domain/errors"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserIsNotVerified         = errors.New("user is not verified")
	ErrSessionDoesNotExist       = errors.New("session does not exist")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
	ErrNotificationFailed        = errors.New("could not send notification")
)

var (
	ErrImageRequired    = e.NewValidationError("image", "Please upload an image.")
	ErrPasswordRequired = e.NewValidationError("password", "Password is required.")
	ErrPasswordTooShort = e.NewValidationError("password", "Password must be at least 6 characters.")
	ErrPasswordTooLong  = e.NewValidationError("password", "Password must be at most 256 characters.")
	ErrUnsupportedImage = e.NewValidationError("image", "Unsupported image type.")
)
