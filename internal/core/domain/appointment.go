package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AppointmentStatus tracks whether the work itself happened.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is a known appointment status.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// ApprovalStatus tracks the craftsman's decision on a requested appointment.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid reports whether s is a known approval status.
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

const rejectionReasonPrefix = "Rejection reason: "

// Appointment is a scheduled visit of a craftsman at a customer.
type Appointment struct {
	AppointmentID   string                `json:"appointmentID"`
	CraftsmanID     string                `json:"craftsmanID"`
	CustomerID      string                `json:"customerID"`
	CustomerName    string                `json:"customerName"`  // read-only, joined from customers
	CustomerEmail   string                `json:"customerEmail"` // read-only, joined from customers
	ScheduledAt     time.Time             `json:"scheduledAt"`
	DurationMinutes int                   `json:"durationMinutes"`
	Location        string                `json:"location"`
	ServiceType     string                `json:"serviceType"`
	ServicePrice    decimal.Decimal       `json:"servicePrice"`
	Notes           string                `json:"notes"`
	Status          AppointmentStatus     `json:"status"`
	ApprovalStatus  ApprovalStatus        `json:"approvalStatus"`
	CompletedAt     *time.Time            `json:"completedAt,omitempty"`
	ReminderSentAt  *time.Time            `json:"reminderSentAt,omitempty"`
	Materials       []AppointmentMaterial `json:"materials"`
	AuditFields
}

// AppointmentMaterial is a material used on an appointment. UnitPrice is a
// snapshot taken when the appointment was completed.
type AppointmentMaterial struct {
	AppointmentID string          `json:"appointmentID"`
	MaterialID    string          `json:"materialID"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

// LineTotal is quantity times unit price, rounded to cents.
func (m AppointmentMaterial) LineTotal() decimal.Decimal {
	return m.Quantity.Mul(m.UnitPrice).Round(2)
}

// Approve moves a pending appointment to approved.
func (a *Appointment) Approve() error {
	switch a.ApprovalStatus {
	case ApprovalApproved:
		return apperrors.NewValidationFailedError("appointment is already approved")
	case ApprovalRejected:
		return apperrors.NewValidationFailedError("appointment is already rejected")
	}
	if a.Status == AppointmentCancelled {
		return apperrors.NewValidationFailedError("cancelled appointment cannot be approved")
	}
	a.ApprovalStatus = ApprovalApproved
	return nil
}

// Reject moves a pending appointment to rejected, cancels it and records the reason in the notes.
func (a *Appointment) Reject(reason string) error {
	switch a.ApprovalStatus {
	case ApprovalRejected:
		return apperrors.NewValidationFailedError("appointment is already rejected")
	case ApprovalApproved:
		return apperrors.NewValidationFailedError("appointment is already approved")
	}
	if a.Status == AppointmentCompleted {
		return apperrors.NewValidationFailedError("completed appointment cannot be rejected")
	}
	a.ApprovalStatus = ApprovalRejected
	a.Status = AppointmentCancelled
	a.Notes = AppendRejectionReason(a.Notes, reason)
	return nil
}

// Complete marks the appointment as done at the given time.
func (a *Appointment) Complete(now time.Time) error {
	if a.ApprovalStatus == ApprovalRejected {
		return apperrors.NewValidationFailedError("rejected appointment cannot be completed")
	}
	switch a.Status {
	case AppointmentCompleted:
		return apperrors.NewValidationFailedError("appointment is already completed")
	case AppointmentCancelled:
		return apperrors.NewValidationFailedError("cancelled appointment cannot be completed")
	}
	a.Status = AppointmentCompleted
	a.CompletedAt = &now
	return nil
}

// Cancel cancels a scheduled appointment.
func (a *Appointment) Cancel() error {
	switch a.Status {
	case AppointmentCompleted:
		return apperrors.NewValidationFailedError("completed appointment cannot be cancelled")
	case AppointmentCancelled:
		return apperrors.NewValidationFailedError("appointment is already cancelled")
	}
	a.Status = AppointmentCancelled
	return nil
}

// CheckInvoiceable returns an error unless an invoice may be created from the appointment.
func (a *Appointment) CheckInvoiceable() error {
	if a.Status != AppointmentCompleted {
		return apperrors.NewValidationFailedError("only completed appointments can be invoiced")
	}
	return nil
}

// MaterialsTotal sums the line totals of all materials.
func (a *Appointment) MaterialsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range a.Materials {
		total = total.Add(m.LineTotal())
	}
	return total
}

// Total is the service price plus all materials.
func (a *Appointment) Total() decimal.Decimal {
	return a.ServicePrice.Add(a.MaterialsTotal())
}

// AppendRejectionReason appends the rejection reason to existing notes, separated by a blank line.
func AppendRejectionReason(notes, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "no reason given"
	}
	line := rejectionReasonPrefix + reason
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n\n" + line
}
