package services

import (
	"fmt"
	"net/smtp"

	"github.com/avivgl/schoolhub-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// SendApprovalNotice tells a user their account was approved and which role
// they were given. Best-effort; callers ignore the error beyond logging.
func (s *EmailService) SendApprovalNotice(to, roleLabel string) error {
	subject := "Your SchoolHub account has been approved"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Account Approved</h2>
			<p>Hi,</p>
			<p>An administrator has approved your account. You can now sign in as <strong>%s</strong>.</p>
		</body>
		</html>
	`, roleLabel)

	return s.Send(to, subject, body)
}
