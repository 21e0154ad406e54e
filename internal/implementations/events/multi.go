package events

import (
	"context"
	"errors"
	"ums/internal/core/domain/user"
)

type Multi struct {
	publishers []user.EventPublisher
}

func NewMulti(publishers ...user.EventPublisher) *Multi {
	return &Multi{publishers: publishers}
}

// Publish hands the event to every publisher, a failing one does not stop the rest.
func (m *Multi) Publish(ctx context.Context, event user.Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
