// Package notify delivers queued comment emails. Comments write rows to the
// notifications outbox; a cron-driven Dispatcher drains it through a Mailer.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer relays mail through an SMTP server with optional PLAIN auth.
// STARTTLS is used when the server offers it.
type SMTPMailer struct {
	from string
	send func(ctx context.Context, msg *mail.Msg) error
}

// NewSMTPMailer returns a mailer for addr (host:port). When username is
// empty no authentication is attempted.
func NewSMTPMailer(addr, from, username, password string) (*SMTPMailer, error) {
	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("notify.NewSMTPMailer: %w", err)
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return nil, fmt.Errorf("notify.NewSMTPMailer: port %q: %w", p, err)
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify.NewSMTPMailer: %w", err)
	}

	return &SMTPMailer{
		from: from,
		send: func(ctx context.Context, m *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, m)
		},
	}, nil
}

// Send delivers msg. Addresses are validated before dialing, so a malformed
// recipient never reaches the relay.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := m.build(msg)
	if err != nil {
		return fmt.Errorf("notify.SMTPMailer.Send: %w", err)
	}
	if err := m.send(ctx, out); err != nil {
		return fmt.Errorf("notify.SMTPMailer.Send: %w", err)
	}
	return nil
}

// build renders msg as a UTF-8 text/plain message. Non-ASCII and control
// characters in the subject are encoded as RFC 2047 words.
func (m *SMTPMailer) build(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	return out, nil
}

// LogMailer writes messages to the log instead of sending them.
// It is used when no SMTP relay is configured.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer returns a LogMailer writing to log.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs msg at info level and never fails.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.InfoContext(ctx, "email",
		"to", msg.To,
		"subject", msg.Subject,
		"body_len", len(msg.Body),
	)
	return nil
}
