package email

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
	"github.com/SscSPs/zimmr_backend/internal/platform/config"
	"github.com/wneessen/go-mail"
)

const sendTimeout = 15 * time.Second

// SMTPMailer delivers e-mails through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

var _ portssvc.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer builds a mailer from the SMTP settings. STARTTLS is used when the server offers it.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.SMTPFrom}, nil
}

// Send renders msg as a MIME message and hands it to the relay.
func (m *SMTPMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	mimeMsg, err := buildMessage(m.from, msg)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, mimeMsg); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("SMTP delivery failed",
			slog.String("kind", string(msg.Kind)),
			slog.String("error", err.Error()))
		return fmt.Errorf("smtp delivery: %w", err)
	}
	return nil
}

func buildMessage(from string, msg domain.EmailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if msg.ToName != "" {
		if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
			return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
		}
	} else if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	for _, a := range msg.Attachments {
		var opts []mail.FileOption
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Data), opts...); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}
	return m, nil
}
