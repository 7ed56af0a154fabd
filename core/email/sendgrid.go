package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender creates a Sender backed by the SendGrid API
func NewSendGridSender(apiKey, from string) Sender {
	return &sendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (s *sendGridSender) Send(msg *Message) error {
	from := mail.NewEmail("", s.from)
	if msg.From != "" {
		from = mail.NewEmail("", msg.From)
	}

	for _, recipient := range msg.To {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainBody, msg.HTMLBody)

		response, err := s.client.Send(message)
		if err != nil {
			return fmt.Errorf("sendgrid send failed: %w", err)
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("sendgrid send failed with status %d: %s", response.StatusCode, response.Body)
		}
	}
	return nil
}
