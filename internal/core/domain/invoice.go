package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes quotes from invoices stored in the same table.
type InvoiceType string

const (
	InvoiceTypeQuote   InvoiceType = "quote"
	InvoiceTypeInvoice InvoiceType = "invoice"
)

// IsValid reports whether t is a known document type.
func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeQuote || t == InvoiceTypeInvoice
}

// NumberPrefix is the prefix used in document numbers, e.g. INV-2026-0001.
func (t InvoiceType) NumberPrefix() string {
	if t == InvoiceTypeQuote {
		return "QUO"
	}
	return "INV"
}

// InvoiceStatus is the payment lifecycle of a document.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoicePaid || s == InvoiceCancelled
}

// CanTransitionTo implements draft -> pending -> paid, with cancellation from any non-terminal status.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoicePending || next == InvoiceCancelled
	case InvoicePending:
		return next == InvoicePaid || next == InvoiceCancelled
	}
	return false
}

// Invoice is an invoice or a quote.
type Invoice struct {
	InvoiceID       string           `json:"invoiceID"`
	InvoiceNumber   string           `json:"invoiceNumber"`
	CraftsmanID     string           `json:"craftsmanID"`
	CustomerID      string           `json:"customerID"`
	CustomerName    string           `json:"customerName"`  // read-only, joined from customers
	CustomerEmail   string           `json:"customerEmail"` // read-only, joined from customers
	AppointmentID   *string          `json:"appointmentID,omitempty"`
	ConvertedFromID *string          `json:"convertedFromID,omitempty"`
	Type            InvoiceType      `json:"type"`
	Status          InvoiceStatus    `json:"status"`
	Amount          decimal.Decimal  `json:"amount"`
	TaxRate         *decimal.Decimal `json:"taxRate,omitempty"` // nil when the tax amount was given explicitly
	TaxAmount       decimal.Decimal  `json:"taxAmount"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	IssueDate       time.Time        `json:"issueDate"`
	DueDate         *time.Time       `json:"dueDate,omitempty"`
	ServiceDate     *time.Time       `json:"serviceDate,omitempty"`
	Location        string           `json:"location"`
	Notes           string           `json:"notes"`
	Items           []InvoiceItem    `json:"items"`
	AuditFields
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	MaterialID  *string         `json:"materialID,omitempty"`
}

// TransitionTo changes the status if the lifecycle allows it.
func (i *Invoice) TransitionTo(next InvoiceStatus) error {
	if !next.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown invoice status %q", next))
	}
	if i.Status == next {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invoice is already %s", next))
	}
	if !i.Status.CanTransitionTo(next) {
		return apperrors.NewValidationFailedError(fmt.Sprintf("cannot change invoice status from %s to %s", i.Status, next))
	}
	i.Status = next
	return nil
}

// IsEditable reports whether items and amounts may still change.
func (i *Invoice) IsEditable() bool {
	return i.Status == InvoiceDraft || i.Status == InvoicePending
}

// CheckConvertible returns an error unless the document is a quote that may become an invoice.
func (i *Invoice) CheckConvertible() error {
	if i.Type != InvoiceTypeQuote {
		return apperrors.NewValidationFailedError("only quotes can be converted to invoices")
	}
	if i.Status == InvoiceCancelled {
		return apperrors.NewValidationFailedError("cancelled quote cannot be converted")
	}
	return nil
}

// FormatInvoiceNumber builds the per-craftsman, per-year document number, e.g. QUO-2026-0007.
func FormatInvoiceNumber(t InvoiceType, year int, sequence int) string {
	return fmt.Sprintf("%s-%d-%04d", t.NumberPrefix(), year, sequence)
}

// InvoiceDocument bundles everything needed to render or send an invoice.
type InvoiceDocument struct {
	Invoice   Invoice
	Customer  Customer
	Craftsman Craftsman
}
