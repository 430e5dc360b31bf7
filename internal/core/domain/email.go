package domain

// EmailKind labels outgoing e-mails for logging and metrics.
type EmailKind string

const (
	EmailAppointmentApproved  EmailKind = "appointment_approved"
	EmailAppointmentRejected  EmailKind = "appointment_rejected"
	EmailAppointmentRequested EmailKind = "appointment_requested"
	EmailAppointmentReminder  EmailKind = "appointment_reminder"
	EmailInvoiceSent          EmailKind = "invoice_sent"
)

// EmailAttachment is a file sent along with an e-mail.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EmailMessage is a rendered plain-text e-mail ready for delivery.
type EmailMessage struct {
	Kind        EmailKind
	To          string
	ToName      string
	ReplyTo     string
	Subject     string
	Body        string
	Attachments []EmailAttachment
}
