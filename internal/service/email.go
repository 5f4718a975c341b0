package service

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forkful/recipebook/backend/config"
)

// EmailService sends mail over SMTP. When SMTP is not configured it logs
// the message instead, which keeps development and tests mail-server free.
type EmailService struct {
	smtpHost  string
	smtpPort  string
	smtpUser  string
	smtpPass  string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:  cfg.SMTPHost,
		smtpPort:  cfg.SMTPPort,
		smtpUser:  cfg.SMTPUser,
		smtpPass:  cfg.SMTPPass,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// SendWelcomeEmail greets a freshly registered user.
func (s *EmailService) SendWelcomeEmail(to, username string) error {
	caser := cases.Title(language.English)
	subject := "Welcome to Recipebook"
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nWelcome to Recipebook! Thank you for joining us.\r\n",
		caser.String(username),
	)
	return s.send(to, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	if s.smtpHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, logging email instead")
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		to, from, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
