package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/config"
	"github.com/nudgecli/nudge/pkg/logger"
)

// Message is an email ready to send. Body may be HTML or plain text.
type Message struct {
	To      string `json:"recipient"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendResult reports a message accepted by the transport.
type SendResult struct {
	Success bool `json:"success"`
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) (SendResult, error)
}

// Transport is the part of *gomail.Client used by SMTPSender.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*gomail.Msg) error
}

// SMTPSender sends through an SMTP server.
type SMTPSender struct {
	transport Transport
	from      string
	log       logger.Logger
}

// NewSMTPSender builds a go-mail client from cfg. STARTTLS is used when
// the server offers it; port 465 uses implicit TLS.
func NewSMTPSender(cfg config.SMTP, l logger.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, common.NewValidationError("smtp.host", "SMTP host is not configured")
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return NewSMTPSenderWithTransport(client, cfg.Sender(), l), nil
}

// NewSMTPSenderWithTransport returns a sender over an existing transport.
func NewSMTPSenderWithTransport(t Transport, from string, l logger.Logger) *SMTPSender {
	return &SMTPSender{transport: t, from: from, log: logger.OrNop(l)}
}

// Validate checks that every field is present and To is an address.
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return common.NewValidationError("recipient", "recipient is required")
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return common.NewValidationError("recipient", fmt.Sprintf("%q is not an email address", m.To))
	}
	if strings.TrimSpace(m.Subject) == "" {
		return common.NewValidationError("subject", "subject is required")
	}
	if strings.TrimSpace(m.Body) == "" {
		return common.NewValidationError("body", "body is required")
	}
	return nil
}

// Send transmits m once. Transport failures are returned as SendError.
func (s *SMTPSender) Send(ctx context.Context, m Message) (SendResult, error) {
	if err := m.Validate(); err != nil {
		return SendResult{}, err
	}
	msg, err := buildMessage(s.from, m)
	if err != nil {
		return SendResult{}, err
	}
	if err := s.transport.DialAndSendWithContext(ctx, msg); err != nil {
		s.log.Error("email: send to %s: %v", m.To, err)
		return SendResult{}, &common.SendError{Recipient: m.To, Err: err}
	}
	s.log.Info("email: sent %q to %s", m.Subject, m.To)
	return SendResult{Success: true}, nil
}

// buildMessage renders m as an HTML message with a plain-text alternative.
func buildMessage(from string, m Message) (*gomail.Msg, error) {
	if from == "" {
		return nil, common.NewValidationError("smtp.from", "sender address is not configured")
	}
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, common.NewValidationError("smtp.from", err.Error())
	}
	if err := msg.To(m.To); err != nil {
		return nil, common.NewValidationError("recipient", err.Error())
	}
	msg.Subject(m.Subject)

	htmlBody, textBody := m.Body, ""
	if LooksLikeHTML(m.Body) {
		textBody = HTMLToText(m.Body)
	} else {
		htmlBody, textBody = TextToHTML(m.Body), strings.TrimSpace(m.Body)
	}
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	msg.AddAlternativeString(gomail.TypeTextPlain, textBody)
	return msg, nil
}
