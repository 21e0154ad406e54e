package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	"time"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

type Result struct {
	Token user.PasswordResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	sender         user.PasswordResetLinkSender
	events         user.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	sender user.PasswordResetLinkSender,
	events user.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
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
		tokenGenerator: tokenGenerator,
		sender:         sender,
		events:         events,
		now:            now,
	}
}

// Run stores a fresh reset token for the account, replacing any pending one, and sends
// the reset link. The stored token is kept when the link could not be sent.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if !u.IsVerified() {
		return result, user.ErrUserIsNotVerified
	}

	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}
	err = s.userRepository.SetPasswordResetToken(ctx, u.ID, token, s.now())
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", u.ID))
		return result, err
	}

	err = s.sender.SendPasswordResetLink(ctx, u, token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", user.ErrNotificationFailed, err)
	}

	s.log.Info(ctx, "Password reset link has been sent.", logging.Entry("userId", u.ID))
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventPasswordResetRequested, u.ID, s.now()))
	return Result{Token: token}, nil
}
