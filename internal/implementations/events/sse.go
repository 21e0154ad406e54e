package events

import (
	"context"
	"encoding/json"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"

	"github.com/r3labs/sse/v2"
)

// SSE pushes account events to the browser streams of the account, one stream per user ID.
type SSE struct {
	server *sse.Server
}

func NewSSE(server *sse.Server) *SSE {
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	return &SSE{server: server}
}

func (p *SSE) Publish(ctx context.Context, event user.Event) error {
	if !p.server.StreamExists(string(event.UserID)) {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.server.Publish(string(event.UserID), &sse.Event{
		Event: []byte(event.Type),
		Data:  data,
	})
	return nil
}
