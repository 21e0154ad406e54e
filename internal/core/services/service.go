package services

import (
	"context"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
)

type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}

// PublishEvent never fails the calling operation, publishing errors are only logged.
func PublishEvent(ctx context.Context, log logging.Logger, publisher user.EventPublisher, event user.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warning(
			ctx,
			"Could not publish account event.",
			logging.Entry("type", event.Type),
			logging.Entry("userId", event.UserID),
			logging.Entry("err", err),
		)
	}
}
