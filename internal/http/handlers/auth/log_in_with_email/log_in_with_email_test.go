package loginwithemail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	c "ums/internal/core/domain/common"
	ratelimiter "ums/internal/core/domain/rate_limiter"
	"ums/internal/core/domain/user"
	loginwithemail "ums/internal/core/services/log_in_with_email"
	"ums/internal/http/handlers/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *loginwithemail.Input
}

func (s *stubService) Run(ctx context.Context, input loginwithemail.Input) (result loginwithemail.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	verifiedAt := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	result.Token = "session-token"
	result.User = user.User{
		ID:         "42",
		Name:       "Alice",
		Email:      input.Email,
		Role:       user.RoleStandard,
		CreatedAt:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		VerifiedAt: c.Some(verifiedAt),
	}
	return result, nil
}

func TestSuccess(t *testing.T) {
	stub := &stubService{}
	rw := httptest.NewRecorder()
	r := httptest.NewRequest(
		http.MethodPost,
		"/auth/login",
		strings.NewReader(`{"email": "Alice@Example.com", "password": "secret"}`),
	)

	New(stub, true).ServeHTTP(rw, r)

	assert.Equal(t, http.StatusOK, rw.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, loginwithemail.Input{Email: "alice@example.com", Password: "secret"}, *stub.input)

	cookies := rw.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SESSION_COOKIE_NAME, cookies[0].Name)
	assert.Equal(t, "session-token", cookies[0].Value)
	assert.True(t, cookies[0].Secure)

	var body Result
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, "session-token", body.Token)
	assert.Equal(t, "42", body.User.ID)
	assert.True(t, body.User.IsVerified)
}

func TestFailures(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			id:             "malformed json",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request data"}`,
		},
		{
			id:             "invalid email",
			body:           `{"email": "alice", "password": "secret"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "empty password",
			body:           `{"email": "alice@example.com", "password": ""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid credentials",
			body:           `{"email": "alice@example.com", "password": "secret"}`,
			err:            user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			id:             "not verified",
			body:           `{"email": "alice@example.com", "password": "secret"}`,
			err:            user.ErrUserIsNotVerified,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"please verify your email"}`,
		},
		{
			id:             "rate limit",
			body:           `{"email": "alice@example.com", "password": "secret"}`,
			err:            ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"error":"rate limit exceeded"}`,
		},
		{
			id:             "unexpected",
			body:           `{"email": "alice@example.com", "password": "secret"}`,
			err:            context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(testcase.body))

			New(&stubService{err: testcase.err}, false).ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Empty(t, rw.Result().Cookies())
			if testcase.expectedBody != "" {
				assert.JSONEq(t, testcase.expectedBody, rw.Body.String())
			}
		})
	}
}
