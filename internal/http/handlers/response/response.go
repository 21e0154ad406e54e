package response

import (
	"encoding/json"
	"errors"
	"net/http"
	e "ums/internal/core/domain/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "invalid authentication token", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

func RenderInvalidCaptcha(rw http.ResponseWriter) {
	RenderError(rw, "invalid captcha", http.StatusForbidden)
}

func RenderNotVerified(rw http.ResponseWriter) {
	RenderError(rw, "please verify your email", http.StatusForbidden)
}

// RenderValidationError renders err if it is a domain validation error and reports whether it did.
func RenderValidationError(rw http.ResponseWriter, err error) bool {
	var validationErr *e.ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}
	Render(rw, validationErrorResponse{Error: validationErr.Error(), Field: validationErr.Field}, http.StatusBadRequest)
	return true
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
