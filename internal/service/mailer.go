package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Email is one outgoing HTML message
type Email struct {
	To          string
	ToName      string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Attachment is a file sent alongside an email
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer sends emails
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SendGridMailer sends messages through the SendGrid v3 mail/send endpoint
type SendGridMailer struct {
	apiKey    string
	url       string
	fromEmail string
	fromName  string
}

// NewSendGridMailer creates a mailer. url is the full mail/send endpoint.
// Timeouts come from the caller's context.
func NewSendGridMailer(apiKey, url, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    apiKey,
		url:       url,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *SendGridMailer) message(email Email) *sgmail.SGMailV3 {
	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	msg := sgmail.NewV3MailInit(from, email.Subject, sgmail.NewEmail(email.ToName, email.To),
		sgmail.NewContent("text/html", email.HTML))
	msg.SetReplyTo(from)
	for _, a := range email.Attachments {
		msg.AddAttachment(sgmail.NewAttachment().
			SetContent(base64.StdEncoding.EncodeToString(a.Content)).
			SetType(a.ContentType).
			SetFilename(a.Filename).
			SetDisposition("attachment"))
	}
	return msg
}

// Send delivers the email. Any non-2xx answer is an ErrDeliveryFailure.
func (m *SendGridMailer) Send(ctx context.Context, email Email) error {
	// The client keeps the request body on itself, so one per send.
	client := sendgrid.NewSendClient(m.apiKey)
	if m.url != "" {
		client.BaseURL = m.url
	}

	resp, err := client.SendWithContext(ctx, m.message(email))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrDeliveryFailure, resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	return nil
}
