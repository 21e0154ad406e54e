package resendverification

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "ums/internal/core/domain/common"
	e "ums/internal/core/domain/errors"
	ratelimiter "ums/internal/core/domain/rate_limiter"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	service "ums/internal/core/services/resend_verification"
	"ums/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(r.Context(), service.Input{Email: c.NewEmail(input.Email)})
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, "user does not exist", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrNotificationFailed):
			response.RenderError(rw, "could not send verification email, please try again", http.StatusBadGateway)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
