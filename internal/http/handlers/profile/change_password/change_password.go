package changepassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	service "ums/internal/core/services/change_password"
	"ums/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.CurrentPassword, validation.Required, validation.Length(0, 512)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(user.MIN_PASSWORD_LEN, user.MAX_PASSWORD_LEN)),
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

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			CurrentPassword: user.RawPassword(input.CurrentPassword),
			NewPassword:     user.RawPassword(input.NewPassword),
		},
	)
	if err != nil {
		if response.RenderValidationError(rw, err) {
			return
		}
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrInvalidCredentials):
			response.RenderError(rw, "invalid current password", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
