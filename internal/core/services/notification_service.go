package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/platform/metrics"
	"github.com/SscSPs/zimmr_backend/internal/utils"
)

const dateTimeLayout = "02.01.2006 15:04"

var mailTemplates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"datetime": func(t time.Time) string { return t.Format(dateTimeLayout) },
	"date": func(t time.Time) string { return t.Format("02.01.2006") },
}).Parse(`
{{define "appointment_approved"}}Hello {{.Appointment.CustomerName}},

your appointment on {{datetime .Appointment.ScheduledAt}} has been confirmed by {{.Craftsman.Name}}.
{{with .Appointment.Location}}
Location: {{.}}{{end}}{{with .Appointment.ServiceType}}
Service: {{.}}{{end}}

Kind regards
{{.Craftsman.Name}}
{{end}}

{{define "appointment_rejected"}}Hello {{.Appointment.CustomerName}},

unfortunately {{.Craftsman.Name}} cannot take the appointment on {{datetime .Appointment.ScheduledAt}}.
{{with .Reason}}
Reason: {{.}}
{{end}}
Please get in touch to find another date.

Kind regards
{{.Craftsman.Name}}
{{end}}

{{define "appointment_requested"}}Hello {{.Craftsman.Name}},

{{.Customer.Name}} requested an appointment on {{datetime .Appointment.ScheduledAt}} ({{.Appointment.DurationMinutes}} minutes).
{{with .Appointment.ServiceType}}
Service: {{.}}{{end}}{{with .Appointment.Location}}
Location: {{.}}{{end}}{{with .Appointment.Notes}}
Notes: {{.}}{{end}}

The request is waiting for your approval.
{{end}}

{{define "appointment_reminder"}}Hello {{.Appointment.CustomerName}},

this is a reminder of your appointment with {{.Craftsman.Name}} on {{datetime .Appointment.ScheduledAt}}.
{{with .Appointment.Location}}
Location: {{.}}{{end}}

Kind regards
{{.Craftsman.Name}}
{{end}}

{{define "invoice_sent"}}Hello {{.Customer.Name}},

please find attached {{if eq .Invoice.Type "quote"}}quote{{else}}invoice{{end}} {{.Invoice.InvoiceNumber}} over {{.Total}}.
{{with .Invoice.DueDate}}
Due date: {{date .}}{{end}}

Kind regards
{{.Craftsman.Name}}
{{end}}
`))

type mailData struct {
	Appointment *domain.Appointment
	Craftsman   *domain.Craftsman
	Customer    *domain.Customer
	Invoice     *domain.Invoice
	Reason      string
	Total       string
}

// notificationService renders the application's e-mails and hands them to a Mailer.
type notificationService struct {
	BaseService
	mailer portssvc.Mailer
}

// NewNotificationService creates a notification service sending through mailer.
func NewNotificationService(mailer portssvc.Mailer) portssvc.NotificationSvc {
	return &notificationService{mailer: mailer}
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

func (s *notificationService) AppointmentApproved(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman) error {
	return s.send(ctx, domain.EmailAppointmentApproved, appt.CustomerEmail, appt.CustomerName, craftsman.Email,
		"Your appointment has been confirmed",
		mailData{Appointment: appt, Craftsman: craftsman}, nil)
}

func (s *notificationService) AppointmentRejected(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman, reason string) error {
	return s.send(ctx, domain.EmailAppointmentRejected, appt.CustomerEmail, appt.CustomerName, craftsman.Email,
		"Your appointment could not be confirmed",
		mailData{Appointment: appt, Craftsman: craftsman, Reason: reason}, nil)
}

func (s *notificationService) AppointmentRequested(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman, customer *domain.Customer) error {
	return s.send(ctx, domain.EmailAppointmentRequested, craftsman.Email, craftsman.Name, customer.Email,
		fmt.Sprintf("New appointment request from %s", customer.Name),
		mailData{Appointment: appt, Craftsman: craftsman, Customer: customer}, nil)
}

func (s *notificationService) AppointmentReminder(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman) error {
	return s.send(ctx, domain.EmailAppointmentReminder, appt.CustomerEmail, appt.CustomerName, craftsman.Email,
		fmt.Sprintf("Reminder: appointment on %s", appt.ScheduledAt.Format(dateTimeLayout)),
		mailData{Appointment: appt, Craftsman: craftsman}, nil)
}

func (s *notificationService) InvoiceSent(ctx context.Context, doc domain.InvoiceDocument, pdf []byte) error {
	var attachments []domain.EmailAttachment
	if len(pdf) > 0 {
		attachments = append(attachments, domain.EmailAttachment{
			Filename:    doc.Invoice.InvoiceNumber + ".pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		})
	}
	label := "Invoice"
	if doc.Invoice.Type == domain.InvoiceTypeQuote {
		label = "Quote"
	}
	return s.send(ctx, domain.EmailInvoiceSent, doc.Customer.Email, doc.Customer.Name, doc.Craftsman.Email,
		fmt.Sprintf("%s %s from %s", label, doc.Invoice.InvoiceNumber, doc.Craftsman.Name),
		mailData{
			Invoice:   &doc.Invoice,
			Craftsman: &doc.Craftsman,
			Customer:  &doc.Customer,
			Total:     utils.FormatEUR(doc.Invoice.TotalAmount),
		}, attachments)
}

func (s *notificationService) send(ctx context.Context, kind domain.EmailKind, to, toName, replyTo, subject string, data mailData, attachments []domain.EmailAttachment) error {
	if to == "" {
		return fmt.Errorf("no recipient address for %s e-mail", kind)
	}
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, string(kind), data); err != nil {
		return fmt.Errorf("failed to render %s e-mail: %w", kind, err)
	}

	err := s.mailer.Send(ctx, domain.EmailMessage{
		Kind:        kind,
		To:          to,
		ToName:      toName,
		ReplyTo:     replyTo,
		Subject:     subject,
		Body:        body.String(),
		Attachments: attachments,
	})
	metrics.RecordEmail(string(kind), err)
	if err != nil {
		return fmt.Errorf("failed to send %s e-mail: %w", kind, err)
	}
	s.LogDebug(ctx, "E-mail sent", slog.String("kind", string(kind)))
	return nil
}
