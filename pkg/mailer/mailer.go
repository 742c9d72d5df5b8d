package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig carries the delivery settings stored in the notification
// settings record.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	UseTLS    bool // true = STARTTLS, false = implicit TLS
}

type Mailer struct{}

func New() *Mailer {
	return &Mailer{}
}

// Send delivers one plain-text message. Returns an error when SMTP is not
// configured or delivery fails.
func (m *Mailer) Send(ctx context.Context, cfg SMTPConfig, to, subject, body string) error {
	if cfg.Host == "" || cfg.FromEmail == "" {
		return fmt.Errorf("smtp settings not configured")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}
	if cfg.UseTLS {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(cfg.FromEmail); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
