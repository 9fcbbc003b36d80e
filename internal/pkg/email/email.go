package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Mailer sends notification emails to users.
type Mailer interface {
	SendNotificationEmail(toEmail, toName, subject, body string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer implements Mailer over plain SMTP.
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// SendNotificationEmail sends a plain notification email. When SMTP
// credentials are not configured the mail is logged instead of sent, so
// development environments work without a mail server.
func (m *SMTPMailer) SendNotificationEmail(toEmail, toName, subject, body string) error {
	if m.config.Host == "" || m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP not configured - notification email not sent")
		return nil
	}

	message := fmt.Sprintf("From: %s <%s>\r\n", m.config.FromName, m.config.FromEmail)
	message += fmt.Sprintf("To: %s <%s>\r\n", toName, toEmail)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	message += "\r\n"
	message += fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>%s</p>
				<p>Regards,<br/>InternHub</p>
			</div>
		</body>
		</html>`, toName, body)

	addr := m.config.Host + ":" + strconv.Itoa(m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		m.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send notification email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug().Str("toEmail", toEmail).Str("subject", subject).Msg("Notification email sent")
	return nil
}
