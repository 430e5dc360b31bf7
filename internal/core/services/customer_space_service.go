package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// portalActorPrefix marks audit fields written on behalf of a portal customer.
const portalActorPrefix = "customer:"

// customerSpaceService implements the CustomerSpaceSvcFacade interface
type customerSpaceService struct {
	BaseService
	spaceRepo       portsrepo.CustomerSpaceRepositoryFacade
	customerRepo    portsrepo.CustomerReader
	craftsmanRepo   portsrepo.CraftsmanReader
	appointmentRepo portsrepo.AppointmentRepositoryFacade
	invoiceRepo     portsrepo.InvoiceReader
	notifier        portssvc.NotificationSvc
	portalBaseURL   string
}

// CustomerSpaceServiceOption is a functional option for configuring the customer space service
type CustomerSpaceServiceOption func(*customerSpaceService)

// WithSpaceAuthorizer sets the craftsman authorizer for the customer space service.
func WithSpaceAuthorizer(authorizer portssvc.CraftsmanAuthorizerSvc) CustomerSpaceServiceOption {
	return func(s *customerSpaceService) {
		s.CraftsmanAuthorizer = authorizer
	}
}

// WithSpaceNotifier sets the service used to tell craftsmen about requested appointments.
func WithSpaceNotifier(notifier portssvc.NotificationSvc) CustomerSpaceServiceOption {
	return func(s *customerSpaceService) {
		s.notifier = notifier
	}
}

// WithPortalBaseURL sets the frontend URL used to build portal links.
func WithPortalBaseURL(baseURL string) CustomerSpaceServiceOption {
	return func(s *customerSpaceService) {
		s.portalBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewCustomerSpaceService creates a new customer space service with the provided options
func NewCustomerSpaceService(
	spaceRepo portsrepo.CustomerSpaceRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	craftsmanRepo portsrepo.CraftsmanReader,
	appointmentRepo portsrepo.AppointmentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceReader,
	options ...CustomerSpaceServiceOption,
) portssvc.CustomerSpaceSvcFacade {
	svc := &customerSpaceService{
		spaceRepo:       spaceRepo,
		customerRepo:    customerRepo,
		craftsmanRepo:   craftsmanRepo,
		appointmentRepo: appointmentRepo,
		invoiceRepo:     invoiceRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CustomerSpaceSvcFacade = (*customerSpaceService)(nil)

// CreateOrRotateSpace issues a fresh access token. Any previous token stops working.
func (s *customerSpaceService) CreateOrRotateSpace(ctx context.Context, customerID string, req dto.CreateCustomerSpaceRequest, requestingUserID string) (*dto.CustomerSpaceGrant, error) {
	customer, err := s.ownedCustomer(ctx, customerID, requestingUserID)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate portal token: %w", err)
	}

	now := time.Now().UTC()
	space := domain.CustomerSpace{
		SpaceID:     uuid.NewString(),
		CustomerID:  customer.CustomerID,
		CraftsmanID: customer.CraftsmanID,
		AuditFields: domain.NewAuditFields(requestingUserID, now),
	}
	existing, err := s.spaceRepo.FindSpaceByCustomerID(ctx, customerID)
	switch {
	case err == nil:
		space.SpaceID = existing.SpaceID
		space.AuditFields = existing.AuditFields
		space.Touch(requestingUserID, now)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}
	space.AccessTokenHash = utils.HashRefreshToken(token)
	space.IsActive = true
	if req.ExpiresInDays != nil {
		expires := now.AddDate(0, 0, *req.ExpiresInDays)
		space.ExpiresAt = &expires
	}

	if err := s.spaceRepo.UpsertSpace(ctx, space); err != nil {
		s.LogError(ctx, err, "Failed to store customer space", slog.String("customer_id", customerID))
		return nil, err
	}
	s.LogInfo(ctx, "Customer space token issued", slog.String("customer_id", customerID))

	return &dto.CustomerSpaceGrant{
		Space:       &space,
		AccessToken: token,
		PortalURL:   s.portalBaseURL + "/portal/" + token,
	}, nil
}

func (s *customerSpaceService) GetSpace(ctx context.Context, customerID string, requestingUserID string) (*domain.CustomerSpace, error) {
	if _, err := s.ownedCustomer(ctx, customerID, requestingUserID); err != nil {
		return nil, err
	}
	return s.spaceRepo.FindSpaceByCustomerID(ctx, customerID)
}

func (s *customerSpaceService) DeactivateSpace(ctx context.Context, customerID string, requestingUserID string) error {
	if _, err := s.ownedCustomer(ctx, customerID, requestingUserID); err != nil {
		return err
	}
	if err := s.spaceRepo.DeactivateSpace(ctx, customerID, requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate customer space", slog.String("customer_id", customerID))
		}
		return err
	}
	s.LogInfo(ctx, "Customer space deactivated", slog.String("customer_id", customerID))
	return nil
}

// GetPortal returns the customer's data for a valid access token.
func (s *customerSpaceService) GetPortal(ctx context.Context, accessToken string) (*domain.CustomerPortal, error) {
	space, err := s.resolveToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, space.CustomerID)
	if err != nil {
		return nil, err
	}
	craftsman, err := s.craftsmanRepo.FindCraftsmanByID(ctx, space.CraftsmanID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointmentRepo.ListAppointmentsForCustomer(ctx, customer.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list portal appointments", slog.String("customer_id", customer.CustomerID))
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListInvoicesForCustomer(ctx, customer.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list portal invoices", slog.String("customer_id", customer.CustomerID))
		return nil, err
	}

	return &domain.CustomerPortal{
		Customer:     *customer,
		Craftsman:    *craftsman,
		Appointments: appointments,
		Invoices:     invoices,
	}, nil
}

// RequestAppointment creates a pending appointment for the portal's customer and tells the craftsman.
func (s *customerSpaceService) RequestAppointment(ctx context.Context, accessToken string, req dto.PublicAppointmentRequest) (*domain.Appointment, error) {
	space, err := s.resolveToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if !req.ScheduledAt.After(now) {
		return nil, apperrors.NewValidationFailedError("scheduled_at must be in the future")
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, space.CustomerID)
	if err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultAppointmentMinutes
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = customer.Address
	}
	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = customer.ServiceType
	}
	appt := domain.Appointment{
		AppointmentID:   uuid.NewString(),
		CraftsmanID:     space.CraftsmanID,
		CustomerID:      customer.CustomerID,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		ScheduledAt:     req.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Location:        location,
		ServiceType:     serviceType,
		ServicePrice:    decimal.Zero,
		Notes:           req.Notes,
		Status:          domain.AppointmentScheduled,
		ApprovalStatus:  domain.ApprovalPending,
		Materials:       []domain.AppointmentMaterial{},
		AuditFields:     domain.NewAuditFields(portalActorPrefix+customer.CustomerID, now),
	}
	if err := s.appointmentRepo.SaveAppointment(ctx, appt); err != nil {
		s.LogError(ctx, err, "Failed to save requested appointment", slog.String("customer_id", customer.CustomerID))
		return nil, err
	}
	s.LogInfo(ctx, "Appointment requested through customer portal",
		slog.String("appointment_id", appt.AppointmentID),
		slog.String("customer_id", customer.CustomerID))

	if s.notifier != nil {
		craftsman, err := s.craftsmanRepo.FindCraftsmanByID(ctx, space.CraftsmanID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load craftsman for notification", slog.String("appointment_id", appt.AppointmentID))
		} else if err := s.notifier.AppointmentRequested(ctx, &appt, craftsman, customer); err != nil {
			s.LogError(ctx, err, "Failed to notify craftsman about requested appointment", slog.String("appointment_id", appt.AppointmentID))
		}
	}
	return &appt, nil
}

func (s *customerSpaceService) ownedCustomer(ctx context.Context, customerID, userID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, userID, customer.CraftsmanID, "customer"); err != nil {
		return nil, err
	}
	return customer, nil
}

// resolveToken maps a raw token to an active, unexpired space. Every failure is reported as not found.
func (s *customerSpaceService) resolveToken(ctx context.Context, accessToken string) (*domain.CustomerSpace, error) {
	notFound := apperrors.NewNotFoundError("customer space not found")
	if strings.TrimSpace(accessToken) == "" {
		return nil, notFound
	}
	space, err := s.spaceRepo.FindSpaceByTokenHash(ctx, utils.HashRefreshToken(accessToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound
		}
		s.LogError(ctx, err, "Failed to resolve customer space token")
		return nil, err
	}
	if !space.IsUsable(time.Now().UTC()) {
		s.LogWarn(ctx, "Inactive or expired customer space used", slog.String("space_id", space.SpaceID))
		return nil, notFound
	}
	return space, nil
}
