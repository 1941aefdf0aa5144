package reminder

import (
	"github.com/kharcha/kharcha/internal/config"
	gomail "gopkg.in/gomail.v2"
)

// Notifier delivers a reminder notification to a single recipient.
type Notifier interface {
	Send(to string, subject string, body string) error
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg config.Mail) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *SMTPNotifier) Send(to string, subject string, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return n.dialer.DialAndSend(m)
}
