package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"ums/internal/core/domain/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const RECONNECT_DELAY = 3 * time.Second

// Connection re-dials the broker whenever the underlying connection is lost.
type Connection struct {
	conn *amqp.Connection
	log  logging.Logger
	lock sync.RWMutex
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{conn: conn, log: log}
	go connection.reconnect(url)
	return connection, nil
}

func (c *Connection) reconnect(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			time.Sleep(RECONNECT_DELAY)

			conn, err := amqp.Dial(url)
			if err == nil {
				c.lock.Lock()
				c.conn = conn
				c.lock.Unlock()
				c.log.Info(ctx, "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is re-created after the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{ch: ch, log: c.log}
	go func() {
		ctx := context.Background()
		for {
			reason, ok := <-channel.current().NotifyClose(make(chan *amqp.Error))
			if !ok || channel.IsClosed() {
				channel.Close()
				return
			}

			c.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))
			for {
				time.Sleep(RECONNECT_DELAY)

				ch, err := c.current().Channel()
				if err == nil {
					channel.lock.Lock()
					channel.ch = ch
					channel.lock.Unlock()
					c.log.Info(ctx, "RabbitMQ channel re-created.")
					break
				}
				c.log.Error(ctx, "Could not re-create RabbitMQ channel.", logging.Entry("err", err))
			}
		}
	}()
	return channel, nil
}

type Channel struct {
	ch     *amqp.Channel
	closed int32
	log    logging.Logger
	lock   sync.RWMutex
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

func (ch *Channel) PublishWithContext(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	return ch.current().PublishWithContext(ctx, exchange, key, false, false, msg)
}

func (ch *Channel) ExchangeDeclare(name string, kind string) error {
	return ch.current().ExchangeDeclare(name, kind, true, false, false, false, nil)
}

func (ch *Channel) QueueDeclareAndBind(queue string, exchange string, key string) error {
	if _, err := ch.current().QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.current().QueueBind(queue, key, exchange, false, nil)
}

// Consume keeps delivering across channel re-creation until the channel is closed.
func (ch *Channel) Consume(queue string, consumer string) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		ctx := context.Background()
		defer close(deliveries)
		for {
			d, err := ch.current().Consume(queue, consumer, false, false, false, false, nil)
			if err != nil {
				ch.log.Error(ctx, "Consume failed.", logging.Entry("queue", queue), logging.Entry("err", err))
				time.Sleep(RECONNECT_DELAY)
				if ch.IsClosed() {
					return
				}
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// closed flag may be set slightly after the delivery channel ends
			time.Sleep(RECONNECT_DELAY)
			if ch.IsClosed() {
				ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				return
			}
		}
	}()
	return deliveries, nil
}
