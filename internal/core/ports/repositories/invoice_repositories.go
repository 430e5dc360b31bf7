package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InvoiceListFilter narrows an invoice listing. Zero values are ignored.
type InvoiceListFilter struct {
	Type       domain.InvoiceType
	Status     domain.InvoiceStatus
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// InvoiceReader defines read operations for invoices and quotes
type InvoiceReader interface {
	// FindInvoiceByID retrieves a document with its items and customer.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByAppointmentID retrieves the live (non-cancelled) invoice created from an appointment.
	FindInvoiceByAppointmentID(ctx context.Context, appointmentID string) (*domain.Invoice, error)

	// FindInvoiceByConvertedFromID retrieves the invoice created from a quote.
	FindInvoiceByConvertedFromID(ctx context.Context, quoteID string) (*domain.Invoice, error)

	// ListInvoices retrieves a craftsman's documents, newest first. Items are not loaded.
	ListInvoices(ctx context.Context, craftsmanID string, filter InvoiceListFilter) ([]domain.Invoice, error)

	// ListInvoicesForCustomer retrieves a customer's non-draft documents, newest first.
	ListInvoicesForCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices and quotes
type InvoiceWriter interface {
	// CreateInvoiceInTx assigns the next document number for the craftsman and persists
	// the invoice with its items. The assigned number is written back to invoice.
	CreateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error

	// CreateInvoice runs CreateInvoiceInTx in its own transaction.
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error

	// FindInvoiceByIDForUpdate loads a document and locks its row until the transaction ends.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceInTx writes header fields and replaces the items.
	UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// UpdateInvoiceStatusInTx changes only the status.
	UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, userID string) error

	// DeleteInvoice removes a document and its items.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
