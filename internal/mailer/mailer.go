package mailer

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

const magicLinkSubject = "Your HostleCart sign-in link"

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// SMTPMailer delivers magic links over SMTP.
type SMTPMailer struct {
	from   string
	send   func(msgs ...*gomail.Message) error
	logger *logger.Logger
}

func NewSMTPMailer(cfg SMTPConfig, log *logger.Logger) *SMTPMailer {
	from := cfg.Sender
	if from == "" {
		from = cfg.Username
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{
		from:   from,
		send:   d.DialAndSend,
		logger: log.Named("SMTPMailer"),
	}
}

func (m *SMTPMailer) SendMagicLink(ctx context.Context, to, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.send(m.magicLinkMessage(to, link)); err != nil {
		m.logger.Error("Failed to send magic link email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("send magic link to %s: %w", to, err)
	}
	m.logger.Info("Magic link email sent", zap.String("to", to))
	return nil
}

func (m *SMTPMailer) magicLinkMessage(to, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", magicLinkSubject)
	msg.SetBody("text/plain", "Open this link to sign in to HostleCart:\n\n"+link+"\n\nThe link works once and expires soon.")
	msg.AddAlternative("text/html", magicLinkHTML(link))
	return msg
}

func magicLinkHTML(link string) string {
	return fmt.Sprintf(
		`<p>Open this link to sign in to HostleCart:</p><p><a href="%s">Sign in</a></p><p>The link works once and expires soon.</p>`,
		html.EscapeString(link))
}
