package notify

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
)

// Attachment is a file carried by a Message. Content is raw bytes; the
// sender encodes it as required by the transport.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a fully assembled email.
type Message struct {
	To          string
	ToName      string
	FromEmail   string
	FromName    string
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridSender delivers messages through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	logger *zap.Logger
}

// NewSender returns a SendGrid sender, or a sender that fails every call with
// the configuration error when the API key or from-address is missing.
func NewSender(cfg config.EmailConfig, logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("email sender not configured", zap.Error(err))
		return unconfiguredSender{err: err}
	}
	return &SendGridSender{client: sendgrid.NewSendClient(cfg.APIKey), logger: logger}
}

// Send builds a v3 mail payload and posts it.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.FromEmail))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(msg.ToName, msg.To))
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/plain", msg.Text), mail.NewContent("text/html", msg.HTML))
	if msg.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", msg.ReplyTo))
	}
	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		m.AddAttachment(att)
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	s.logger.Debug("email sent", zap.String("subject", msg.Subject), zap.Int("status", resp.StatusCode))
	return nil
}

type unconfiguredSender struct {
	err error
}

func (u unconfiguredSender) Send(context.Context, Message) error { return u.err }
