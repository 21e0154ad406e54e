package captcha

import (
	"net/http"
	"ums/internal/core/services/captcha"
)

const CAPTCHA_TOKEN_HEADER = "X-Captcha-Token"

func SetCaptchaTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CAPTCHA_TOKEN_HEADER)
		if token != "" {
			r = r.WithContext(captcha.WithCaptchaToken(r.Context(), captcha.CaptchaToken(token)))
		}
		next.ServeHTTP(w, r)
	})
}
