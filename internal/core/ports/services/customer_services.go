package services

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	GetCustomerByID(ctx context.Context, customerID string, requestingUserID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams, requestingUserID string) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customers
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error)
	// DeleteCustomer fails with ErrConflict while appointments or invoices reference the customer.
	DeleteCustomer(ctx context.Context, customerID string, requestingUserID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}

// CustomerSpaceSvcFacade manages customer portals and serves the public portal.
type CustomerSpaceSvcFacade interface {
	// CreateOrRotateSpace issues a new access token for the customer's portal.
	CreateOrRotateSpace(ctx context.Context, customerID string, req dto.CreateCustomerSpaceRequest, requestingUserID string) (*dto.CustomerSpaceGrant, error)
	GetSpace(ctx context.Context, customerID string, requestingUserID string) (*domain.CustomerSpace, error)
	DeactivateSpace(ctx context.Context, customerID string, requestingUserID string) error

	// GetPortal resolves a raw access token to the customer's portal view.
	GetPortal(ctx context.Context, accessToken string) (*domain.CustomerPortal, error)

	// RequestAppointment creates a pending appointment on behalf of the portal's customer.
	RequestAppointment(ctx context.Context, accessToken string, req dto.PublicAppointmentRequest) (*domain.Appointment, error)
}
