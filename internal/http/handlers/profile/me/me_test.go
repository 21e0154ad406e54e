package me

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"ums/internal/core/domain/user"
	service "ums/internal/core/services/get_user_by_session_token"

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
	result.User = user.User{
		ID:           "42",
		Name:         "Alice",
		Email:        "alice@example.com",
		Mobile:       "+10000000000",
		Image:        "42/avatar.png",
		Role:         user.RoleStandard,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestMe(t *testing.T) {
	stub := &stubService{}
	rw := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
	r.Header.Set("Authorization", "Bearer token")

	New(stub).ServeHTTP(rw, r)

	assert.Equal(t, http.StatusOK, rw.Code)
	require.NotNil(t, stub.input)
	assert.Equal(t, user.SessionToken("token"), stub.input.Token)
	assert.NotContains(t, rw.Body.String(), "hash")

	var body Result
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, "42", body.User.ID)
	assert.Equal(t, "+10000000000", body.User.Mobile)
	assert.Equal(t, "42/avatar.png", body.User.Image)
	assert.False(t, body.User.IsVerified)
	assert.Nil(t, body.User.VerifiedAt)
}

func TestUnauthorized(t *testing.T) {
	cases := []struct {
		id     string
		header string
		err    error
	}{
		{id: "no token"},
		{id: "unknown session", header: "Bearer token", err: user.ErrSessionDoesNotExist},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/profile/me", nil)
			if testcase.header != "" {
				r.Header.Set("Authorization", testcase.header)
			}

			New(&stubService{err: testcase.err}).ServeHTTP(rw, r)

			assert.Equal(t, http.StatusUnauthorized, rw.Code)
			assert.JSONEq(t, `{"error":"invalid authentication token"}`, rw.Body.String())
		})
	}
}
