// Package mail sends HTML email over SMTP.
package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Transport is an open connection that can deliver several messages.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Mailer opens transports.
type Mailer interface {
	Open(ctx context.Context) (Transport, error)
}

// SMTPConfig holds SMTP connection and sender settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPMailer dials an SMTP server once per Open.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &SMTPMailer{cfg: cfg}
}

// Open connects and authenticates to the SMTP server.
func (m *SMTPMailer) Open(ctx context.Context) (Transport, error) {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(m.cfg.Timeout),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to smtp server: %w", err)
	}

	return &smtpTransport{client: client, from: m.cfg.From, fromName: m.cfg.FromName}, nil
}

type smtpTransport struct {
	client   *gomail.Client
	from     string
	fromName string
}

func (t *smtpTransport) Send(_ context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(t.fromName, t.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	return t.client.Send(m)
}

func (t *smtpTransport) Close() error {
	return t.client.Close()
}
