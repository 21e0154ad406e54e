package verifyaccount

import (
	"errors"
	"net/http"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	service "ums/internal/core/services/verify_account"
	"ums/internal/http/handlers/response"
)

const MAX_ID_LEN = 64

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
	Verified bool `json:"verified"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" || len(id) > MAX_ID_LEN {
		response.RenderError(rw, "invalid verification link", http.StatusUnprocessableEntity)
		return
	}

	_, err := h.service.Run(r.Context(), service.Input{ID: user.ID(id)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, "invalid verification link", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{Verified: true}, http.StatusOK)
}
