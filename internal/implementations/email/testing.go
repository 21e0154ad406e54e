package email

import (
	"context"
	"fmt"
	"sync"
	"ums/internal/core/domain/logging"
)

// FakeNotifier keeps messages in memory. With a logger set it also logs them,
// which is how messages are delivered in local development.
type FakeNotifier struct {
	Sent        []Message
	ReturnError bool
	log         logging.Logger
	lock        sync.Mutex
}

func NewFakeNotifier(log logging.Logger) *FakeNotifier {
	return &FakeNotifier{log: log}
}

func (n *FakeNotifier) Send(ctx context.Context, message Message) error {
	if n.ReturnError {
		return fmt.Errorf("could not send email to %s", message.To)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	n.lock.Lock()
	n.Sent = append(n.Sent, message)
	n.lock.Unlock()
	if n.log != nil {
		n.log.Info(
			ctx,
			"Email message.",
			logging.Entry("to", message.To),
			logging.Entry("subject", message.Subject),
			logging.Entry("text", message.Text),
		)
	}
	return nil
}

func (n *FakeNotifier) LastSent() Message {
	n.lock.Lock()
	defer n.lock.Unlock()
	if len(n.Sent) == 0 {
		panic("Sent count is 0.")
	}
	return n.Sent[len(n.Sent)-1]
}
