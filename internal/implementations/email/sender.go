package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"time"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
)

var verificationTemplate = template.Must(template.New("verification").Parse(
	`<p>Hi {{.Name}},</p>` +
		`<p>Please <a href="{{.Link}}">verify your email</a> to activate your account.</p>`,
))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(
	`<p>Hi {{.Name}},</p>` +
		`<p>Please <a href="{{.Link}}">reset your password</a>.</p>` +
		`<p>If you did not request a password reset, ignore this message.</p>`,
))

type templateParams struct {
	Name string
	Link string
}

// Sender renders account messages and hands them to the notifier. Every delivery
// is bounded by timeout, running out of time counts as a failure.
type Sender struct {
	notifier         Notifier
	verificationURL  url.URL
	passwordResetURL url.URL
	timeout          time.Duration
}

func NewSender(
	notifier Notifier,
	verificationURL url.URL,
	passwordResetURL url.URL,
	timeout time.Duration,
) *Sender {
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	return &Sender{
		notifier:         notifier,
		verificationURL:  verificationURL,
		passwordResetURL: passwordResetURL,
		timeout:          timeout,
	}
}

func (s *Sender) VerificationLink(u user.User) string {
	return withQuery(s.verificationURL, "id", string(u.ID))
}

func (s *Sender) PasswordResetLink(token user.PasswordResetToken) string {
	return withQuery(s.passwordResetURL, "token", string(token))
}

func (s *Sender) SendVerificationLink(ctx context.Context, u user.User) error {
	link := s.VerificationLink(u)
	html, err := render(verificationTemplate, templateParams{Name: u.Name, Link: link})
	if err != nil {
		return err
	}
	return s.send(ctx, Message{
		To:      string(u.Email),
		Subject: "Verify your email",
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s, please verify your email: %s", u.Name, link),
	})
}

func (s *Sender) SendPasswordResetLink(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	link := s.PasswordResetLink(token)
	html, err := render(passwordResetTemplate, templateParams{Name: u.Name, Link: link})
	if err != nil {
		return err
	}
	return s.send(ctx, Message{
		To:      string(u.Email),
		Subject: "Reset your password",
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s, reset your password here: %s", u.Name, link),
	})
}

func (s *Sender) send(ctx context.Context, message Message) error {
	if message.To == "" {
		return fmt.Errorf("email of the user is not defined")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.notifier.Send(ctx, message)
}

func withQuery(base url.URL, key string, value string) string {
	q := base.Query()
	q.Set(key, value)
	base.RawQuery = q.Encode()
	return base.String()
}

func render(t *template.Template, params templateParams) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}
