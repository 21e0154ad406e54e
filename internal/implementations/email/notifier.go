package email

import "context"

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Notifier delivers a single message. Implementations must respect ctx deadlines.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}
