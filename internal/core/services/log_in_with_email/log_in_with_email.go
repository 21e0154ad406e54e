package loginwithemail

import (
	"context"
	"errors"
	"time"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "log-in-with-email::" + string(i.Email)
}

type Result struct {
	Token user.SessionToken
	User  user.User
}

type service struct {
	log                   logging.Logger
	userRepository        user.UserRepository
	sessionRepository     user.SessionRepository
	passwordHasher        user.PasswordHasher
	sessionTokenGenerator user.SessionTokenGenerator
	events                user.EventPublisher
	now                   func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenGenerator user.SessionTokenGenerator,
	events user.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if events == nil {
		panic(e.NewNilArgumentError("events"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		userRepository:        userRepository,
		sessionRepository:     sessionRepository,
		passwordHasher:        passwordHasher,
		sessionTokenGenerator: sessionTokenGenerator,
		events:                events,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}
	// Admin accounts have their own sign-in, not this one.
	if u.IsAdmin() {
		return result, user.ErrInvalidCredentials
	}
	if !u.IsVerified() {
		return result, user.ErrUserIsNotVerified
	}

	sessionToken := s.sessionTokenGenerator.GenerateSessionToken()
	err = s.sessionRepository.Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     sessionToken,
		CreatedAt: s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create session token for user.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, session token created.",
		logging.Entry("userId", u.ID),
	)
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventLoggedIn, u.ID, s.now()))
	return Result{Token: sessionToken, User: u}, nil
}
