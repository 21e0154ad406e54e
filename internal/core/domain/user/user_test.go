package user

import (
	"strings"
	"testing"
	"time"

	c "ums/internal/core/domain/common"

	"github.com/stretchr/testify/assert"
)

func TestHasPasswordResetToken(t *testing.T) {
	NOW := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	u := User{
		PasswordResetToken:         c.Some(PasswordResetToken("abc")),
		PasswordResetTokenIssuedAt: c.Some(NOW.Add(-2 * time.Hour)),
	}

	cases := []struct {
		name     string
		token    PasswordResetToken
		validFor time.Duration
		expected bool
	}{
		{name: "matching token without expiry", token: "abc", validFor: 0, expected: true},
		{name: "matching token within validity", token: "abc", validFor: 3 * time.Hour, expected: true},
		{name: "matching token expired", token: "abc", validFor: time.Hour, expected: false},
		{name: "other token", token: "abd", validFor: 0, expected: false},
		{name: "empty token", token: "", validFor: 0, expected: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, u.HasPasswordResetToken(tc.token, NOW, tc.validFor))
		})
	}
}

func TestHasPasswordResetTokenWhenNoTokenIsStored(t *testing.T) {
	u := User{}
	assert.False(t, u.HasPasswordResetToken("", time.Now(), 0))
	assert.False(t, u.HasPasswordResetToken("abc", time.Now(), 0))
}

func TestSecretsAreMasked(t *testing.T) {
	assert.Equal(t, "***", RawPassword("secret").String())
	assert.Equal(t, "***", PasswordHash("hash").String())
	assert.Equal(t, "***", PasswordResetToken("token").String())
}

func TestRawPasswordValidate(t *testing.T) {
	cases := []struct {
		name     string
		password RawPassword
		expected error
	}{
		{name: "empty", password: "", expected: ErrPasswordRequired},
		{name: "too short", password: "12345", expected: ErrPasswordTooShort},
		{name: "shortest", password: "123456"},
		{name: "counted in characters", password: "ééééé", expected: ErrPasswordTooShort},
		{name: "longest", password: RawPassword(strings.Repeat("a", MAX_PASSWORD_LEN))},
		{name: "too long", password: RawPassword(strings.Repeat("a", MAX_PASSWORD_LEN+1)), expected: ErrPasswordTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.password.Validate(), tc.expected)
		})
	}
}
