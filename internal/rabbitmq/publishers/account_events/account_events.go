package accountevents

import (
	"context"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/logging"
	"ums/internal/core/domain/user"
	"ums/internal/rabbitmq"
	"ums/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func (p *RabbitMQ) Publish(ctx context.Context, event user.Event) error {
	message := schema.NewAccountEvent(event)
	body, err := message.Marshal()
	if err != nil {
		return err
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, message.RoutingKey(), amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    message.At,
		Body:         body,
	})
	if err != nil {
		return err
	}
	p.log.Debug(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", message.RoutingKey()),
		logging.Entry("userId", message.UserID),
	)
	return nil
}
