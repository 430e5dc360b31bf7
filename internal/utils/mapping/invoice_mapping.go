package mapping

import (
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/models"
)

// ToModelInvoice maps the header. Sequence fields are assigned by the repository.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:       d.InvoiceID,
		InvoiceNumber:   d.InvoiceNumber,
		CraftsmanID:     d.CraftsmanID,
		CustomerID:      d.CustomerID,
		CustomerName:    d.CustomerName,
		CustomerEmail:   NullString(d.CustomerEmail),
		AppointmentID:   NullStringPtr(d.AppointmentID),
		ConvertedFromID: NullStringPtr(d.ConvertedFromID),
		Type:            string(d.Type),
		Status:          string(d.Status),
		Amount:          d.Amount,
		TaxRate:         NullDecimal(d.TaxRate),
		TaxAmount:       d.TaxAmount,
		TotalAmount:     d.TotalAmount,
		IssueDate:       d.IssueDate,
		DueDate:         NullTime(d.DueDate),
		ServiceDate:     NullTime(d.ServiceDate),
		Location:        NullString(d.Location),
		Notes:           NullString(d.Notes),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:       m.InvoiceID,
		InvoiceNumber:   m.InvoiceNumber,
		CraftsmanID:     m.CraftsmanID,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail.String,
		AppointmentID:   StringPtr(m.AppointmentID),
		ConvertedFromID: StringPtr(m.ConvertedFromID),
		Type:            domain.InvoiceType(m.Type),
		Status:          domain.InvoiceStatus(m.Status),
		Amount:          m.Amount,
		TaxRate:         DecimalPtr(m.TaxRate),
		TaxAmount:       m.TaxAmount,
		TotalAmount:     m.TotalAmount,
		IssueDate:       m.IssueDate,
		DueDate:         TimePtr(m.DueDate),
		ServiceDate:     TimePtr(m.ServiceDate),
		Location:        m.Location.String,
		Notes:           m.Notes.String,
		Items:           []domain.InvoiceItem{},
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:      d.ItemID,
		InvoiceID:   d.InvoiceID,
		Position:    d.Position,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		LineTotal:   d.LineTotal,
		MaterialID:  NullStringPtr(d.MaterialID),
	}
}

func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		Position:    m.Position,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		LineTotal:   m.LineTotal,
		MaterialID:  StringPtr(m.MaterialID),
	}
}
