package services

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices and quotes
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams, requestingUserID string) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices and quotes
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// CreateInvoiceFromAppointment materializes a pending invoice from a completed appointment.
	CreateInvoiceFromAppointment(ctx context.Context, appointmentID string, creatorUserID string) (*domain.Invoice, error)

	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error)

	// DeleteInvoice removes a draft document.
	DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error

	// ConvertQuote creates a new invoice from a quote. The quote itself is left unchanged.
	ConvertQuote(ctx context.Context, quoteID string, requestingUserID string) (*domain.Invoice, error)
}

// InvoiceDeliverySvc renders and sends documents.
type InvoiceDeliverySvc interface {
	// RenderInvoicePDF returns the document as PDF bytes.
	RenderInvoicePDF(ctx context.Context, invoiceID string, requestingUserID string) ([]byte, *domain.Invoice, error)

	// SendInvoice e-mails the document to the customer. A draft becomes pending.
	SendInvoice(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceDeliverySvc
}

// DocumentRenderer turns invoices and quotes into printable documents.
type DocumentRenderer interface {
	RenderInvoice(doc domain.InvoiceDocument) ([]byte, error)
}
