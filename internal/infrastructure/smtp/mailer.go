package smtp

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/go-reservation-api/internal/config"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		send:     smtp.SendMail,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := m.send(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// VerificationSender delivers registration codes over a Mailer.
type VerificationSender struct {
	mailer Mailer
	ttl    time.Duration
}

func NewVerificationSender(m Mailer, ttl time.Duration) *VerificationSender {
	return &VerificationSender{mailer: m, ttl: ttl}
}

// SendRegisterVerification mails the one-time code to a newly registered customer.
func (s *VerificationSender) SendRegisterVerification(to, otp string) error {
	body := fmt.Sprintf("Welcome!\r\n\r\nYour verification code is %s.\r\nIt is valid for %d minutes.\r\n\r\nIf you did not create an account, ignore this email.",
		otp, int(s.ttl.Minutes()))
	return s.mailer.SendEmail(to, "Verify your email", body)
}
