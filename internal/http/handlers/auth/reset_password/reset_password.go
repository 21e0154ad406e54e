package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	resetpassword "ums/internal/core/services/reset_password"
	"ums/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	UserID   string `json:"user_id"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required, validation.Length(0, 64)),
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(user.MIN_PASSWORD_LEN, user.MAX_PASSWORD_LEN)),
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
		resetpassword.Input{
			UserID:      user.ID(input.UserID),
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		if response.RenderValidationError(rw, err) {
			return
		}
		switch {
		case errors.Is(err, user.ErrInvalidPasswordResetToken), errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, "invalid or expired token", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
