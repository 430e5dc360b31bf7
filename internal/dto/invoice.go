package dto

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// InvoiceItemInput is one requested invoice line.
type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"gte=0"`
	MaterialID  *string         `json:"material_id"`
}

// CreateInvoiceRequest defines the data needed to create an invoice or quote.
// TaxAmount wins over TaxRate when both are given.
type CreateInvoiceRequest struct {
	CraftsmanID   string             `json:"craftsman_id"` // admins only
	Type          domain.InvoiceType `json:"type" binding:"required,oneof=quote invoice"`
	CustomerID    string             `json:"customer_id" binding:"required"`
	AppointmentID *string            `json:"appointment_id"`
	Items         []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
	TaxRate       *decimal.Decimal   `json:"tax_rate" binding:"omitempty,gte=0,lte=100"`
	TaxAmount     *decimal.Decimal   `json:"tax_amount" binding:"omitempty,gte=0"`
	IssueDate     *time.Time         `json:"issue_date"`
	DueDate       *time.Time         `json:"due_date"`
	ServiceDate   *time.Time         `json:"service_date"`
	Location      string             `json:"location"`
	Notes         string             `json:"notes"`
}

// UpdateInvoiceRequest defines the editable fields of a draft or pending document.
// Items, when given, replace all existing items. Tax is recomputed from the stored
// rate unless an explicit TaxAmount is given.
type UpdateInvoiceRequest struct {
	Items       []InvoiceItemInput `json:"items" binding:"omitempty,min=1,dive"`
	TaxRate     *decimal.Decimal   `json:"tax_rate" binding:"omitempty,gte=0,lte=100"`
	TaxAmount   *decimal.Decimal   `json:"tax_amount" binding:"omitempty,gte=0"`
	DueDate     *time.Time         `json:"due_date"`
	ServiceDate *time.Time         `json:"service_date"`
	Location    *string            `json:"location"`
	Notes       *string            `json:"notes"`
}

// UpdateInvoiceStatusRequest moves a document through its lifecycle.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,oneof=draft pending paid cancelled"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	CraftsmanID string     `form:"craftsman_id"`
	Type        string     `form:"type" binding:"omitempty,oneof=quote invoice"`
	Status      string     `form:"status" binding:"omitempty,oneof=draft pending paid cancelled"`
	CustomerID  string     `form:"customer_id"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Limit       int        `form:"limit,default=100" binding:"min=1,max=500"`
	Offset      int        `form:"offset,default=0" binding:"min=0"`
}

// InvoiceItemResponse is one invoice line.
type InvoiceItemResponse struct {
	ItemID      string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	MaterialID  *string         `json:"material_id,omitempty"`
}

// InvoiceResponse defines the data returned for an invoice or quote.
type InvoiceResponse struct {
	InvoiceID       string                `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CraftsmanID     string                `json:"craftsman_id"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	AppointmentID   *string               `json:"appointment_id,omitempty"`
	ConvertedFromID *string               `json:"converted_from_id,omitempty"`
	Type            domain.InvoiceType    `json:"type"`
	Status          domain.InvoiceStatus  `json:"status"`
	Amount          decimal.Decimal       `json:"amount"`
	TaxRate         *decimal.Decimal      `json:"tax_rate,omitempty"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	IssueDate       time.Time             `json:"issue_date"`
	DueDate         *time.Time            `json:"due_date,omitempty"`
	ServiceDate     *time.Time            `json:"service_date,omitempty"`
	Location        string                `json:"location"`
	Notes           string                `json:"notes"`
	Items           []InvoiceItemResponse `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToLineInputs converts requested items for the billing calculations.
func ToLineInputs(items []InvoiceItemInput) []billing.LineInput {
	lines := make([]billing.LineInput, len(items))
	for i, it := range items {
		lines[i] = billing.LineInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			MaterialID:  it.MaterialID,
		}
	}
	return lines
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ItemID:      it.ItemID,
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
			MaterialID:  it.MaterialID,
		}
	}
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		InvoiceNumber:   inv.InvoiceNumber,
		CraftsmanID:     inv.CraftsmanID,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		AppointmentID:   inv.AppointmentID,
		ConvertedFromID: inv.ConvertedFromID,
		Type:            inv.Type,
		Status:          inv.Status,
		Amount:          inv.Amount,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		TotalAmount:     inv.TotalAmount,
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		ServiceDate:     inv.ServiceDate,
		Location:        inv.Location,
		Notes:           inv.Notes,
		Items:           items,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.LastUpdatedAt,
	}
}

// ToListInvoicesResponse converts a slice of domain.Invoice to ListInvoicesResponse
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return ListInvoicesResponse{Invoices: res}
}
