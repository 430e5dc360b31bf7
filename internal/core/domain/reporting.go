package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessSummary aggregates a craftsman's billing and scheduling figures over a period.
type BusinessSummary struct {
	CraftsmanID string
	From        time.Time
	To          time.Time

	PaidRevenue       decimal.Decimal // total of paid invoices issued in the period
	OutstandingAmount decimal.Decimal // total of pending invoices
	OpenQuotesAmount  decimal.Decimal // total of draft/pending quotes
	InvoiceCounts     map[InvoiceStatus]int

	AppointmentsByStatus   map[AppointmentStatus]int
	AppointmentsByApproval map[ApprovalStatus]int

	TrackedMinutes  int
	BillableMinutes int
	BillableAmount  decimal.Decimal
}
