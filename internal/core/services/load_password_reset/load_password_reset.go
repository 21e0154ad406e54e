package loadpasswordreset

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
	Token user.PasswordResetToken
}

type Result struct {
	UserID user.ID
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	validFor       time.Duration
	now            func() time.Time
}

// New returns the service resolving a reset link to its account. Zero validFor
// means reset tokens never expire.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
	validFor time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		validFor:       validFor,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Token == "" {
		return result, user.ErrInvalidPasswordResetToken
	}
	u, err := s.userRepository.GetByPasswordResetToken(ctx, input.Token)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	if !u.HasPasswordResetToken(input.Token, s.now(), s.validFor) {
		s.log.Info(ctx, "Password reset token has expired.", logging.Entry("userId", u.ID))
		return result, user.ErrInvalidPasswordResetToken
	}
	return Result{UserID: u.ID}, nil
}
