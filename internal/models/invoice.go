package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the persisted quote or invoice header.
type Invoice struct {
	InvoiceID       string              `db:"invoice_id"`
	InvoiceNumber   string              `db:"invoice_number"`
	SequenceYear    int                 `db:"sequence_year"`
	SequenceNumber  int                 `db:"sequence_number"`
	CraftsmanID     string              `db:"craftsman_id"`
	CustomerID      string              `db:"customer_id"`
	CustomerName    string              `db:"customer_name"`
	CustomerEmail   sql.NullString      `db:"customer_email"`
	AppointmentID   sql.NullString      `db:"appointment_id"`
	ConvertedFromID sql.NullString      `db:"converted_from_id"`
	Type            string              `db:"type"`
	Status          string              `db:"status"`
	Amount          decimal.Decimal     `db:"amount"`
	TaxRate         decimal.NullDecimal `db:"tax_rate"`
	TaxAmount       decimal.Decimal     `db:"tax_amount"`
	TotalAmount     decimal.Decimal     `db:"total_amount"`
	IssueDate       time.Time           `db:"issue_date"`
	DueDate         sql.NullTime        `db:"due_date"`
	ServiceDate     sql.NullTime        `db:"service_date"`
	Location        sql.NullString      `db:"location"`
	Notes           sql.NullString      `db:"notes"`
	AuditFields
}

// InvoiceItem is a line of a quote or invoice.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	Position    int             `db:"position"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total"`
	MaterialID  sql.NullString  `db:"material_id"`
}
