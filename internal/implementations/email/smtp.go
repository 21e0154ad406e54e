package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	TLS      bool
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type SMTPNotifier struct {
	from   string
	client *mail.Client
}

func NewSMTPNotifier(config SMTPConfig) (*SMTPNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTimeout(config.Timeout),
	}
	if config.Username != "" && config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(config.Username),
			mail.WithPassword(config.Password),
		)
	}
	if config.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create SMTP client: %w", err)
	}
	return &SMTPNotifier{from: config.From, client: client}, nil
}

func (n *SMTPNotifier) Send(ctx context.Context, message Message) error {
	if message.To == "" {
		return fmt.Errorf("email requires a recipient")
	}
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.Text)
	if message.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, message.HTML)
	}
	return n.client.DialAndSendWithContext(ctx, msg)
}
