package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uida/property-portal/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendLoginCode sends a one-time portal login code
func (s *Sender) SendLoginCode(to, name, code string, expiresAt time.Time) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your Property Portal Login Code"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your one-time login code is %s.\n"+
			"It expires at %s. Do not share it with anyone.\n"+
			"\nBest regards,\nProperty Portal",
		name, code, expiresAt.Format("15:04:05"),
	)
	e.Text = []byte(body)

	return s.send(e)
}

// SendInstallmentReminder sends an upcoming or overdue EMI reminder
func (s *Sender) SendInstallmentReminder(to, name, propertyID string, dueDate time.Time, amount, lateFee decimal.Decimal, overdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if overdue {
		e.Subject = "Overdue Installment Notification"
	} else {
		e.Subject = "Upcoming Installment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", name)
	if overdue {
		body += fmt.Sprintf(
			"Your installment of INR %s for property %s was due on %s and is now overdue.\n"+
				"A late fee of INR %s has accrued so far and grows daily.\n"+
				"Please make the payment as soon as possible on the property portal.\n",
			amount.StringFixed(2), propertyID, dueDate.Format("2006-01-02"), lateFee.StringFixed(2),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your installment of INR %s for property %s is due on %s.\n"+
				"Paying on time avoids the per-day late fee.\n",
			amount.StringFixed(2), propertyID, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nProperty Portal"
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
