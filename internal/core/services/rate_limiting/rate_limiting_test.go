package ratelimiting

import (
	"context"
	"testing"
	"ums/internal/core/domain/logging"
	ratelimiter "ums/internal/core/domain/rate_limiter"
	"ums/internal/core/services"

	"github.com/stretchr/testify/suite"
)

type input struct {
	Value string
}

func (i input) GetRateLimitKey() string {
	return "test-rate-limiting-key::" + i.Value
}

type result struct{}

type stubService struct {
	WasCalled bool
}

func (s *stubService) Run(ctx context.Context, input input) (result result, err error) {
	s.WasCalled = true
	return result, nil
}

type testRateLimitingSuite struct {
	suite.Suite
	Logger      *logging.FakeLogger
	RateLimiter *ratelimiter.FakeRateLimiter
	Inner       *stubService
	Service     services.Service[input, result]
}

func (suite *testRateLimitingSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.RateLimiter = ratelimiter.NewFakeRateLimiter(false)
	suite.Inner = &stubService{}
	suite.Service = WithRateLimiting[input, result](
		suite.Logger,
		suite.RateLimiter,
		ratelimiter.Limit{Value: 10, Interval: ratelimiter.Minute},
		suite.Inner,
	)
}

func TestRateLimitingService(t *testing.T) {
	suite.Run(t, new(testRateLimitingSuite))
}

func (suite *testRateLimitingSuite) TestNotLimited() {
	ctx := context.Background()
	suite.RateLimiter.IsAllowed = true
	_, err := suite.Service.Run(ctx, input{Value: "test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(suite.Inner.WasCalled)
	assert.Equal([]string{"test-rate-limiting-key::test"}, suite.RateLimiter.Keys)
}

func (suite *testRateLimitingSuite) TestLimited() {
	ctx := context.Background()
	suite.RateLimiter.IsAllowed = false
	_, err := suite.Service.Run(ctx, input{Value: "test"})

	assert := suite.Require()
	assert.ErrorIs(err, ratelimiter.ErrRateLimitExceeded)
	assert.False(suite.Inner.WasCalled)
	assert.Equal(1, suite.Logger.Count(logging.WARNING))
}
