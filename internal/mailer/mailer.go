package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"stockbot/internal/config"
)

type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontEndURL string
}

func New(cfg *config.Config) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &Mailer{
		dialer:      dialer,
		from:        cfg.SMTPSender,
		frontEndURL: cfg.FrontEndURL,
	}
}

func (m *Mailer) SendPasswordResetEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontEndURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset request")

	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p><a href="%s">Click here to choose a new password.</a></p>
		<p>The link expires in 24 hours. If you did not request this change, you can ignore this email.</p>
	`, resetURL)

	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
