package loadpasswordreset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"ums/internal/core/domain/user"
	service "ums/internal/core/services/load_password_reset"

	"github.com/stretchr/testify/assert"
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
	return service.Result{UserID: "42"}, nil
}

func TestLoadPasswordReset(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		err            error
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:             "valid token",
			url:            "/auth/password_reset?token=a%2Bb",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"user_id":"42"}`,
			expectedInput:  &service.Input{Token: "a+b"},
		},
		{
			id:             "missing token",
			url:            "/auth/password_reset",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			id:             "unknown token",
			url:            "/auth/password_reset?token=abc",
			err:            user.ErrInvalidPasswordResetToken,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"invalid or expired token"}`,
			expectedInput:  &service.Input{Token: "abc"},
		},
		{
			id:             "store failure",
			url:            "/auth/password_reset?token=abc",
			err:            context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
			expectedInput:  &service.Input{Token: "abc"},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.err}
			rw := httptest.NewRecorder()

			New(stub).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, testcase.url, nil))

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.JSONEq(t, testcase.expectedBody, rw.Body.String())
			assert.Equal(t, testcase.expectedInput, stub.input)
		})
	}
}
