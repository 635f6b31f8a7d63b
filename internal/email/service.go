package email

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/medvault/records-api/internal/config"
)

// Service sends appointment notifications. Sends are best-effort; callers
// log failures and never surface them to the client.
type Service interface {
	SendBookingConfirmation(to, patientName string, slot time.Time, hospital string) error
	SendCancellation(to, patientName string, slot time.Time) error
}

func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendBookingConfirmation(to, patientName string, slot time.Time, hospital string) error {
	body := fmt.Sprintf(
		"Hello,\n\nAn appointment for %s has been booked at %s on %s.\n",
		patientName, hospital, slot.Format(time.RFC1123))
	return s.send(to, "Appointment confirmed", body)
}

func (s *smtpService) SendCancellation(to, patientName string, slot time.Time) error {
	body := fmt.Sprintf(
		"Hello,\n\nThe appointment for %s on %s has been cancelled.\n",
		patientName, slot.Format(time.RFC1123))
	return s.send(to, "Appointment cancelled", body)
}

type noopService struct{}

func (*noopService) SendBookingConfirmation(string, string, time.Time, string) error { return nil }
func (*noopService) SendCancellation(string, string, time.Time) error                { return nil }
