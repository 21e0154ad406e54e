package consumers

import (
	"context"
	"ums/internal/app/deps"
	dl "ums/internal/core/domain/logging"
	accountevents "ums/internal/rabbitmq/consumers/account_events"
)

// InitConsumers starts the audit consumer of account events. The returned channel is
// closed once the consumer stops receiving deliveries.
func InitConsumers(deps *deps.Deps) (<-chan struct{}, func()) {
	rabbitmqChannel := deps.DeclareAccountEvents()

	queue := deps.Config.RabbitmqAccountEventsQueue
	consumer := accountevents.New(deps.Logger, rabbitmqChannel, queue)
	if err := consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return consumer.Done(), func() { rabbitmqChannel.Close() }
}
