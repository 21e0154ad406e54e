package captcha

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type rejectingValidator struct{}

func (v rejectingValidator) ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool {
	return false
}

type stubService struct {
	WasCalled bool
}

func (s *stubService) Run(ctx context.Context, input string) (result string, err error) {
	s.WasCalled = true
	return input, nil
}

func TestCaptcha(t *testing.T) {
	cases := []struct {
		id        string
		validator CaptchaValidator
		token     CaptchaToken
		expected  error
	}{
		{id: "valid token", validator: NewAllowAlwaysCaptchaValidator(), token: "token", expected: nil},
		{id: "missing token in test mode", validator: NewAllowAlwaysCaptchaValidator(), token: "", expected: nil},
		{id: "rejected token", validator: rejectingValidator{}, token: "token", expected: ErrInvalidCaptcha},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			inner := &stubService{}
			service := WithCaptcha[string, string](testcase.validator, inner)

			ctx := WithCaptchaToken(context.Background(), testcase.token)
			_, err := service.Run(ctx, "input")

			if testcase.expected == nil {
				require.NoError(t, err)
				require.True(t, inner.WasCalled)
				return
			}
			require.ErrorIs(t, err, testcase.expected)
			require.False(t, inner.WasCalled)
		})
	}
}
