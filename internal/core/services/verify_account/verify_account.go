package verifyaccount

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
	ID user.ID
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	events         user.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	events user.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
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
		events:         events,
		now:            now,
	}
}

// Run marks the account verified. Consuming the same link again is a no-op.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.ID.IsZero() {
		return result, user.ErrUserDoesNotExist
	}
	u, err := s.userRepository.GetByID(ctx, input.ID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Verification link for unknown user.", logging.Entry("userId", input.ID))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.ID))
		return result, err
	}
	if u.IsVerified() {
		return Result{User: u}, nil
	}

	u, err = s.userRepository.Verify(ctx, input.ID, s.now())
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.ID))
		return result, err
	}

	s.log.Info(ctx, "User successfully verified.", logging.Entry("userId", u.ID))
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventVerified, u.ID, s.now()))
	return Result{User: u}, nil
}
