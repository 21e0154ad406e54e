package logout

import (
	"context"
	"errors"
	"testing"
	"time"
	c "ums/internal/core/domain/common"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	Events            *user.FakeEventPublisher
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.Events = user.NewFakeEventPublisher()
	suite.Service = New(
		suite.Logger,
		suite.SessionRepository,
		suite.Events,
		func() time.Time { return NOW },
	)
}

func TestLogOutService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUserAndSession()

	_, err := s.Service.Run(
		context.Background(),
		Input{Token: user.SessionToken(SESSION_TOKEN)},
	)
	s.Nil(err)
	s.False(s.sessionExists(user.SessionToken(SESSION_TOKEN)))
	s.Equal([]user.Event{user.NewEvent(user.EventLoggedOut, u.ID, NOW)}, s.Events.Published)
}

func (s *testSuite) TestErrorReturnedIfSessionTokenInvalid() {
	s.createUserAndSession()

	_, err := s.Service.Run(
		context.Background(),
		Input{Token: user.SessionToken("invalid-session-token")},
	)
	s.True(errors.Is(err, user.ErrSessionDoesNotExist))
	s.True(s.sessionExists(user.SessionToken(SESSION_TOKEN)))
	s.Empty(s.Events.Published)
}

func (s *testSuite) createUserAndSession() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			Role:         user.RoleStandard,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}

	err = s.SessionRepository.Create(
		context.Background(),
		user.CreateSessionInput{
			UserID:    u.ID,
			Token:     user.SessionToken(SESSION_TOKEN),
			CreatedAt: NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	s.True(s.sessionExists(user.SessionToken(SESSION_TOKEN)))
	return u
}

func (s *testSuite) sessionExists(token user.SessionToken) bool {
	s.T().Helper()
	_, err := s.SessionRepository.GetUserByToken(context.Background(), token)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		return false
	}
	if err != nil {
		s.FailNow(err.Error())
	}
	return true
}
