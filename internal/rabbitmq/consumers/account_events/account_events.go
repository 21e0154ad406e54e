package accountevents

import (
	"context"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/rabbitmq"
	"ums/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer writes every account event it receives to the audit log.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	done    chan struct{}
}

func New(log logging.Logger, channel *rabbitmq.Channel, queue string) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &Consumer{log: log, channel: channel, queue: queue, done: make(chan struct{})}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "auditor")
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		defer close(c.done)
		for delivery := range deliveries {
			c.Handle(delivery.Body)
			c.ack(delivery)
		}
	}()
	return nil
}

// Done is closed once the delivery stream has ended.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}

func (c *Consumer) Handle(body []byte) {
	ctx := context.Background()
	event := &schema.AccountEvent{}
	if err := event.Unmarshal(body); err != nil {
		c.log.Error(ctx, "Could not unmarshal account event.", logging.Entry("err", err), logging.Entry("body", string(body)))
		return
	}
	c.log.Info(
		ctx,
		"Account event.",
		logging.Entry("type", event.Type),
		logging.Entry("userId", event.UserID),
		logging.Entry("at", event.At),
	)
}

func (c *Consumer) ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
