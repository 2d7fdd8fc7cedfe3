package service

import (
	"log/slog"
	"net/smtp"
	"os"
)

type EmailService interface{ Send(to, subject, body string) error }

type smtpEmail struct{}

func NewEmailService() EmailService { return &smtpEmail{} }

func (s *smtpEmail) Send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		// no mail relay configured (memory/demo mode); drop silently
		slog.Debug("smtp not configured, skipping mail", "to", to, "subject", subject)
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	addr := host + ":" + port

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	// local relays like MailHog need no auth
	return smtp.SendMail(addr, nil, from, []string{to}, []byte(msg))
}
