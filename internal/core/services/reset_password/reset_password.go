package resetpassword

import (
	"context"
	"errors"
	"time"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
)

type Input struct {
	UserID      user.ID
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	events         user.EventPublisher
	validFor       time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	events user.EventPublisher,
	validFor time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if events == nil {
		panic(e.NewNilArgumentError("events"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		events:         events,
		validFor:       validFor,
		now:            now,
	}
}

// Run replaces the password of the account the token was issued to and consumes the token.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.NewPassword.Validate(); err != nil {
		return result, err
	}
	if input.UserID.IsZero() || input.Token == "" {
		return result, user.ErrInvalidPasswordResetToken
	}

	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userId", input.UserID))
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.UserID))
		return result, err
	}
	if !u.HasPasswordResetToken(input.Token, s.now(), s.validFor) {
		return result, user.ErrInvalidPasswordResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}
	err = s.userRepository.ResetPassword(ctx, u.ID, input.Token, newPasswordHash)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Password reset token was consumed or replaced concurrently.", logging.Entry("userId", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userId", u.ID))
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventPasswordReset, u.ID, s.now()))
	return result, nil
}
