package logout

import (
	"errors"
	"net/http"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	logout "ums/internal/core/services/log_out"
	"ums/internal/http/handlers/auth"
	"ums/internal/http/handlers/response"
)

type Handler struct {
	service      services.Service[logout.Input, logout.Result]
	secureCookie bool
}

func New(
	service services.Service[logout.Input, logout.Result],
	secureCookie bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, secureCookie: secureCookie}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	_, err := h.service.Run(
		r.Context(),
		logout.Input{Token: token},
	)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		auth.ClearSessionCookie(rw, h.secureCookie)
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	auth.ClearSessionCookie(rw, h.secureCookie)
	response.Render(rw, struct{}{}, http.StatusOK)
}
