package logout

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
	Token user.SessionToken
}

type Result struct{}

type service struct {
	log               logging.Logger
	sessionRepository user.SessionRepository
	events            user.EventPublisher
	now               func() time.Time
}

func New(
	log logging.Logger,
	sessionRepository user.SessionRepository,
	events user.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if events == nil {
		panic(e.NewNilArgumentError("events"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		sessionRepository: sessionRepository,
		events:            events,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.sessionRepository.Delete(ctx, input.Token)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	s.log.Info(ctx, "User logged out, session deleted.", logging.Entry("userId", userID))
	services.PublishEvent(ctx, s.log, s.events, user.NewEvent(user.EventLoggedOut, userID, s.now()))
	return result, nil
}
