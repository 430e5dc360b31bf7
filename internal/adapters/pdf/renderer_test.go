package pdf

import (
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(t domain.InvoiceType) domain.InvoiceDocument {
	due := time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC)
	return domain.InvoiceDocument{
		Invoice: domain.Invoice{
			InvoiceNumber: "INV-2026-0001",
			Type:          t,
			Status:        domain.InvoicePending,
			Amount:        decimal.RequireFromString("165.80"),
			TaxAmount:     decimal.RequireFromString("31.50"),
			TotalAmount:   decimal.RequireFromString("197.30"),
			IssueDate:     time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
			DueDate:       &due,
			Location:      "Hauptstr. 1, Berlin",
			Notes:         "Thank you for your order.\nWarranty 2 years.",
			Items: []domain.InvoiceItem{
				{Position: 1, Description: "Service: boiler maintenance", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(120), LineTotal: decimal.NewFromInt(120)},
				{Position: 2, Description: "Copper pipe (m)", Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.RequireFromString("18.32"), LineTotal: decimal.RequireFromString("45.80")},
			},
		},
		Customer:  domain.Customer{Name: "Erika Muster", Email: "erika@example.com", Address: "Hauptstr. 1\n10115 Berlin"},
		Craftsman: domain.Craftsman{Name: "Meister Bau", Email: "meister@example.com", Phone: "+49 30 1234", Specialty: "Plumbing"},
	}
}

func TestRenderInvoice(t *testing.T) {
	out, err := NewRenderer().RenderInvoice(sampleDocument(domain.InvoiceTypeInvoice))
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderQuoteWithoutOptionalFields(t *testing.T) {
	doc := sampleDocument(domain.InvoiceTypeQuote)
	doc.Invoice.DueDate = nil
	doc.Invoice.Notes = ""
	doc.Invoice.Items = nil
	doc.Customer.Address = ""

	out, err := NewRenderer().RenderInvoice(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines(" a \n\n b "))
	assert.Nil(t, splitLines(""))
}
