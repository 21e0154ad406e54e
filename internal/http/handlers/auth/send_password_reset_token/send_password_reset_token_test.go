package sendpasswordresettoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	ratelimiter "ums/internal/core/domain/rate_limiter"
	"ums/internal/core/domain/user"
	"ums/internal/core/services/captcha"
	service "ums/internal/core/services/send_password_reset_token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{Token: "reset-token"}, nil
}

func TestTokenIsExposedInTestMode(t *testing.T) {
	for _, isTestMode := range []bool{true, false} {
		stub := &stubService{}
		rw := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(`{"email": "Alice@example.com"}`))

		New(stub, isTestMode).ServeHTTP(rw, r)

		assert.Equal(t, http.StatusOK, rw.Code)
		require.NotNil(t, stub.input)
		assert.Equal(t, service.Input{Email: "alice@example.com"}, *stub.input)
		if isTestMode {
			assert.Equal(t, "reset-token", rw.Header().Get("x-test-password-reset-token"))
		} else {
			assert.Empty(t, rw.Header().Get("x-test-password-reset-token"))
		}
	}
}

func TestFailures(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{id: "captcha", err: captcha.ErrInvalidCaptcha, expectedStatus: http.StatusForbidden},
		{id: "rate limit", err: ratelimiter.ErrRateLimitExceeded, expectedStatus: http.StatusTooManyRequests},
		{id: "unknown email", err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnprocessableEntity},
		{id: "not verified", err: user.ErrUserIsNotVerified, expectedStatus: http.StatusForbidden},
		{id: "notifier", err: user.ErrNotificationFailed, expectedStatus: http.StatusBadGateway},
		{id: "unexpected", err: context.DeadlineExceeded, expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/password_reset/token", strings.NewReader(`{"email": "alice@example.com"}`))

			New(&stubService{err: testcase.err}, true).ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Empty(t, rw.Header().Get("x-test-password-reset-token"))
		})
	}
}
