package services

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// Mailer delivers e-mail messages.
type Mailer interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// NotificationSvc builds and sends the application's e-mails.
// Callers log returned errors; a failed e-mail never fails the primary mutation.
type NotificationSvc interface {
	AppointmentApproved(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman) error
	AppointmentRejected(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman, reason string) error
	AppointmentRequested(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman, customer *domain.Customer) error
	AppointmentReminder(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman) error
	InvoiceSent(ctx context.Context, doc domain.InvoiceDocument, pdf []byte) error
}

// ReminderSvc sends the day-ahead appointment reminders.
type ReminderSvc interface {
	// SendDueReminders reminds customers of approved appointments on the day after now.
	// It returns how many reminders went out.
	SendDueReminders(ctx context.Context, now time.Time) (int, error)
}
