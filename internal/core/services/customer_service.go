package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/google/uuid"
)

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// CustomerServiceOption is a functional option for configuring the customer service
type CustomerServiceOption func(*customerService)

// WithCustomerAuthorizer sets the craftsman authorizer for the customer service.
func WithCustomerAuthorizer(authorizer portssvc.CraftsmanAuthorizerSvc) CustomerServiceOption {
	return func(s *customerService) {
		s.CraftsmanAuthorizer = authorizer
	}
}

// NewCustomerService creates a new customer service with the provided options
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, options ...CustomerServiceOption) portssvc.CustomerSvcFacade {
	svc := &customerService{customerRepo: customerRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer creates a customer for the caller's craftsman.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, creatorUserID, req.CraftsmanID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		CraftsmanID: craftsmanID,
		Name:        name,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		ServiceType: strings.TrimSpace(req.ServiceType),
		Notes:       req.Notes,
		AuditFields: domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}

	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", customer.CustomerID),
		slog.String("craftsman_id", craftsmanID))
	return &customer, nil
}

// GetCustomerByID retrieves a customer of a craftsman the user may act for.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string, requestingUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, requestingUserID, customer.CraftsmanID, "customer"); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCustomers lists the customers of the resolved craftsman.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams, requestingUserID string) ([]domain.Customer, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, requestingUserID, params.CraftsmanID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.ListCustomers(ctx, craftsmanID, portsrepo.CustomerListFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// UpdateCustomer applies the provided fields.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	customer, err := s.GetCustomerByID(ctx, customerID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		customer.Name = name
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	if req.ServiceType != nil {
		customer.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	customer.Touch(requestingUserID, time.Now().UTC())

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.String("customer_id", customerID))
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer that is no longer referenced.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string, requestingUserID string) error {
	if _, err := s.GetCustomerByID(ctx, customerID, requestingUserID); err != nil {
		return err
	}
	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("customer still has appointments or invoices")
		}
		s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		return err
	}
	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}
