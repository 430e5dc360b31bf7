package email

import (
	"context"
	"log/slog"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
)

// LogMailer writes e-mails to the log instead of sending them. Used when SMTP is not configured.
type LogMailer struct {
	logger *slog.Logger
}

var _ portssvc.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	attachments := make([]string, len(msg.Attachments))
	for i, a := range msg.Attachments {
		attachments[i] = a.Filename
	}
	m.logger.InfoContext(ctx, "E-mail not sent, SMTP disabled",
		slog.String("kind", string(msg.Kind)),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Any("attachments", attachments),
		slog.String("body", msg.Body))
	return nil
}
