package email

import (
	"fmt"
	"strings"

	"github.com/keighl/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkSender creates a Sender backed by the Postmark API
func NewPostmarkSender(serverToken, accountToken, from string) Sender {
	return &postmarkSender{
		client: postmark.NewClient(serverToken, accountToken),
		from:   from,
	}
}

func (s *postmarkSender) Send(msg *Message) error {
	from := s.from
	if msg.From != "" {
		from = msg.From
	}

	email := postmark.Email{
		From:     from,
		To:       strings.Join(msg.To, ","),
		Subject:  msg.Subject,
		TextBody: msg.PlainBody,
		HtmlBody: msg.HTMLBody,
	}

	response, err := s.client.SendEmail(email)
	if err != nil {
		return fmt.Errorf("postmark send failed: %w", err)
	}
	if response.ErrorCode != 0 {
		return fmt.Errorf("postmark send failed with code %d: %s", response.ErrorCode, response.Message)
	}
	return nil
}
