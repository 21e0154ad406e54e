package events

import (
	"errors"
	"net/http"
	"sync"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
	s "ums/internal/core/services/get_user_by_session_token"
	"ums/internal/http/handlers/auth"
	"ums/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	"github.com/r3labs/sse/v2"
)

// Handler streams account events of the session owner. The stream ID is the user ID.
// A stream is removed once its last subscriber disconnects.
type Handler struct {
	log         logging.Logger
	service     services.Service[s.Input, s.Result]
	sseServer   *sse.Server
	lock        sync.Mutex
	subscribers map[string]int
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service, subscribers: make(map[string]int)}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if tokenFromURLParam := chi.URLParam(r, "sessionToken"); tokenFromURLParam != "" {
		token, ok = user.SessionToken(tokenFromURLParam), len(tokenFromURLParam) <= auth.AUTH_TOKEN_MAX_LEN
	}
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), s.Input{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != string(result.User.ID) {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}

	h.subscribe(streamID)
	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from account events.",
			logging.Entry("userId", result.User.ID),
		)
		h.unsubscribe(streamID)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to account events.",
		logging.Entry("userId", result.User.ID),
	)
	h.sseServer.ServeHTTP(rw, r)
}

func (h *Handler) subscribe(streamID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.subscribers[streamID]++
}

func (h *Handler) unsubscribe(streamID string) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.subscribers[streamID]--
	if h.subscribers[streamID] > 0 {
		return
	}
	delete(h.subscribers, streamID)
	h.sseServer.RemoveStream(streamID)
}

func (h *Handler) subscriberCount(streamID string) int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.subscribers[streamID]
}
