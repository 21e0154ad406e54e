package changepassword

import (
	"context"
	"time"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	"ums/internal/core/services/auth"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	User            user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	events         user.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	events user.EventPublisher,
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
		passwordHasher: passwordHasher,
		userRepository: userRepository,
		events:         events,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.NewPassword.Validate(); err != nil {
		return result, err
	}
	isCurrentPasswordValid := s.passwordHasher.ValidatePassword(
		input.CurrentPassword,
		input.User.PasswordHash,
	)
	if !isCurrentPasswordValid {
		return result, user.ErrInvalidCredentials
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}
	if err := s.userRepository.SetPassword(ctx, input.User.ID, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	s.log.Info(ctx, "Password successfully changed.", logging.Entry("userId", input.User.ID))
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventPasswordChanged, input.User.ID, s.now()))
	return Result{}, nil
}
