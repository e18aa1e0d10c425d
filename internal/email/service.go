package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/careline/social-api/config"
)

// Service sends account emails. Sending is best-effort: callers log
// failures and carry on.
type Service interface {
	SendWelcome(to, username string) error
}

type gomailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewService returns a gomail-backed sender, or a no-op one when email is
// disabled in config.
func NewService(cfg config.EmailConfig) Service {
	if !cfg.Enabled {
		return &noopService{}
	}
	return &gomailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *gomailService) SendWelcome(to, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to Careline")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Fill in your profile so others can find you.\n", username))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

type noopService struct{}

func (s *noopService) SendWelcome(to, username string) error { return nil }
