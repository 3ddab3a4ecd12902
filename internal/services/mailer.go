// internal/services/mailer.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/inventra/inventra-backend/internal/config"
)

// Mailer sends transactional email. When no SMTP host is configured the
// message is logged instead, which keeps local development working without
// a mail server.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) SendVerificationEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/v1/auth/verify-email/%s", m.cfg.Server.BaseURL, token)
	subject := "Verify your email address"
	body := fmt.Sprintf(`
		<h2>Welcome to Inventra, %s!</h2>
		<p>Please confirm your email address to activate your account.</p>
		<p><a href="%s">Verify Email</a></p>
		<p>This link expires in 24 hours. If you did not sign up, you can ignore this message.</p>
	`, name, link)

	return m.send(to, subject, body)
}

func (m *Mailer) SendPasswordResetEmail(to, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.Server.BaseURL, token)
	subject := "Reset your password"
	body := fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Hi %s, a password reset was requested for your account.</p>
		<p><a href="%s">Reset Password</a></p>
		<p>This link expires in 15 minutes. If you did not request a reset, no action is needed.</p>
	`, name, link)

	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	email := m.cfg.Email
	if email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, skipping email delivery")
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\n", email.FromName, email.FromEmail)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=UTF-8\r\n"
	msg += "\r\n" + htmlBody

	addr := email.SMTPHost + ":" + email.SMTPPort
	auth := smtp.PlainAuth("", email.SMTPUsername, email.SMTPPassword, email.SMTPHost)

	if err := smtp.SendMail(addr, auth, email.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sent")
	return nil
}
