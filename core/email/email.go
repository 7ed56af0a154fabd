package email

import (
	"fmt"

	"backoffice/core/config"
	"backoffice/core/logger"
)

// Message is a single outgoing email
type Message struct {
	To       []string
	From     string
	Subject  string
	PlainBody string
	HTMLBody  string
}

// Sender delivers email through a configured provider
type Sender interface {
	Send(msg *Message) error
}

// NewSender selects a provider from config. The "log" provider is the
// default so development environments never send real mail.
func NewSender(cfg *config.Config, log logger.Logger) (Sender, error) {
	switch cfg.EmailProvider {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid provider requires SENDGRID_API_KEY")
		}
		return NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFromAddress), nil
	case "postmark":
		if cfg.PostmarkServerKey == "" {
			return nil, fmt.Errorf("postmark provider requires POSTMARK_SERVER_KEY")
		}
		return NewPostmarkSender(cfg.PostmarkServerKey, cfg.PostmarkAccountKey, cfg.EmailFromAddress), nil
	case "log", "":
		return &logSender{logger: log}, nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.EmailProvider)
	}
}

type logSender struct {
	logger logger.Logger
}

func (s *logSender) Send(msg *Message) error {
	s.logger.Info("email (log provider)",
		logger.Strings("to", msg.To),
		logger.String("subject", msg.Subject))
	return nil
}
