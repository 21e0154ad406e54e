package loadpasswordreset

import (
	"errors"
	"net/http"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	service "ums/internal/core/services/load_password_reset"
	"ums/internal/http/handlers/response"
)

const MAX_TOKEN_LEN = 1024

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

type Result struct {
	UserID string `json:"user_id"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || len(token) > MAX_TOKEN_LEN {
		response.RenderError(rw, "invalid or expired token", http.StatusUnprocessableEntity)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: user.PasswordResetToken(token)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidPasswordResetToken):
			response.RenderError(rw, "invalid or expired token", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{UserID: string(result.UserID)}, http.StatusOK)
}
