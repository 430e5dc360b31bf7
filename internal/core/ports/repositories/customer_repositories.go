package repositories

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// CustomerListFilter narrows a customer listing.
type CustomerListFilter struct {
	Search string // matches name, e-mail or phone
	Limit  int
	Offset int
}

// CustomerReader defines read operations for customers
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a craftsman's customers ordered by name.
	ListCustomers(ctx context.Context, craftsmanID string, filter CustomerListFilter) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customers
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer. Returns ErrConflict while appointments or invoices reference it.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
