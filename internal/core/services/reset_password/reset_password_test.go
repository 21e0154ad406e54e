package resetpassword

import (
	"context"
	"sync"
	"testing"
	"time"
	c "ums/internal/core/domain/common"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	TOKEN        = user.PasswordResetToken("reset-token")
	OLD_PASSWORD = user.RawPassword("old-password")
	NEW_PASSWORD = user.RawPassword("new-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Events         *user.FakeEventPublisher
	Service        services.Service[Input, Result]
	Alice          user.User
	Bob            user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Events = user.NewFakeEventPublisher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		suite.Events,
		24*time.Hour,
		func() time.Time { return NOW },
	)
	suite.Alice = suite.createUser("alice@example.com")
	suite.Bob = suite.createUser("bob@example.com")
	suite.Require().NoError(
		suite.UserRepository.SetPasswordResetToken(context.Background(), suite.Alice.ID, TOKEN, NOW.Add(-time.Hour)),
	)
}

func (suite *testSuite) createUser(email string) user.User {
	hash, err := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	suite.Require().NoError(err)
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail(email),
		Role:         user.RoleStandard,
		PasswordHash: hash,
		CreatedAt:    NOW,
	})
	suite.Require().NoError(err)
	return u
}

func (suite *testSuite) storedUser(id user.ID) user.User {
	u, err := suite.UserRepository.GetByID(context.Background(), id)
	suite.Require().NoError(err)
	return u
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.NoError(err)
	stored := suite.storedUser(suite.Alice.ID)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, stored.PasswordHash))
	assert.False(stored.PasswordResetToken.IsPresent)
	assert.False(stored.PasswordResetTokenIssuedAt.IsPresent)
	assert.Equal([]user.EventType{user.EventPasswordReset}, suite.Events.Types())
}

func (suite *testSuite) TestTokenCannotBeReused() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: NEW_PASSWORD})
	suite.Require().NoError(err)

	_, err = suite.Service.Run(ctx, Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: "third-password"})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidPasswordResetToken)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, suite.storedUser(suite.Alice.ID).PasswordHash))
}

func (suite *testSuite) TestTokenBoundToAccount() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{UserID: suite.Bob.ID, Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidPasswordResetToken)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, suite.storedUser(suite.Bob.ID).PasswordHash))
	assert.True(suite.storedUser(suite.Alice.ID).PasswordResetToken.IsPresent)
}

func (suite *testSuite) TestInvalidInput() {
	cases := []struct {
		id       string
		input    Input
		expected error
	}{
		{id: "wrong token", input: Input{UserID: suite.Alice.ID, Token: "other", NewPassword: NEW_PASSWORD}, expected: user.ErrInvalidPasswordResetToken},
		{id: "empty token", input: Input{UserID: suite.Alice.ID, NewPassword: NEW_PASSWORD}, expected: user.ErrInvalidPasswordResetToken},
		{id: "unknown user", input: Input{UserID: "unknown", Token: TOKEN, NewPassword: NEW_PASSWORD}, expected: user.ErrInvalidPasswordResetToken},
		{id: "empty password", input: Input{UserID: suite.Alice.ID, Token: TOKEN}, expected: user.ErrPasswordRequired},
		{id: "short password", input: Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: "12345"}, expected: user.ErrPasswordTooShort},
	}
	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			_, err := suite.Service.Run(context.Background(), testcase.input)
			suite.Require().ErrorIs(err, testcase.expected)
		})
	}
	suite.Require().True(suite.storedUser(suite.Alice.ID).PasswordResetToken.IsPresent)
}

func (suite *testSuite) TestExpiredToken() {
	suite.Require().NoError(
		suite.UserRepository.SetPasswordResetToken(context.Background(), suite.Alice.ID, TOKEN, NOW.Add(-25*time.Hour)),
	)

	_, err := suite.Service.Run(
		context.Background(),
		Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	suite.Require().ErrorIs(err, user.ErrInvalidPasswordResetToken)
}

// rotatingRepository issues a new reset token right after the user has been read,
// as a concurrent reset request or completion would.
type rotatingRepository struct {
	*user.FakeUserRepository
	next user.PasswordResetToken
}

func (r *rotatingRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	u, err := r.FakeUserRepository.GetByID(ctx, id)
	if err != nil {
		return u, err
	}
	if r.next != "" {
		err = r.FakeUserRepository.SetPasswordResetToken(ctx, id, r.next, NOW)
	}
	return u, err
}

func (suite *testSuite) TestTokenReplacedAfterRead() {
	repo := &rotatingRepository{FakeUserRepository: suite.UserRepository, next: "newer-token"}
	service := New(suite.Logger, repo, suite.PasswordHasher, suite.Events, 24*time.Hour, func() time.Time { return NOW })

	_, err := service.Run(
		context.Background(),
		Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidPasswordResetToken)
	stored := suite.storedUser(suite.Alice.ID)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, stored.PasswordHash))
	assert.Equal(c.Some(user.PasswordResetToken("newer-token")), stored.PasswordResetToken)
	assert.Empty(suite.Events.Published)
}

func (suite *testSuite) TestConcurrentCompletionsConsumeTokenOnce() {
	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.Service.Run(
				context.Background(),
				Input{UserID: suite.Alice.ID, Token: TOKEN, NewPassword: NEW_PASSWORD},
			)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, user.ErrInvalidPasswordResetToken)
	}
	suite.Require().Equal(1, succeeded)
	suite.Require().Len(suite.Events.Published, 1)
}
