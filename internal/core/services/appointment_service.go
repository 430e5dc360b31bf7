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
	"github.com/SscSPs/zimmr_backend/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultAppointmentMinutes = 60

// appointmentService implements the AppointmentSvcFacade interface
type appointmentService struct {
	BaseService
	appointmentRepo portsrepo.AppointmentRepositoryWithTx
	customerRepo    portsrepo.CustomerReader
	craftsmanRepo   portsrepo.CraftsmanReader
	materialRepo    portsrepo.MaterialReader
	notifier        portssvc.NotificationSvc
}

// AppointmentServiceOption is a functional option for configuring the appointment service
type AppointmentServiceOption func(*appointmentService)

// WithAppointmentAuthorizer sets the craftsman authorizer for the appointment service.
func WithAppointmentAuthorizer(authorizer portssvc.CraftsmanAuthorizerSvc) AppointmentServiceOption {
	return func(s *appointmentService) {
		s.CraftsmanAuthorizer = authorizer
	}
}

// WithAppointmentNotifier sets the service used for customer e-mails.
func WithAppointmentNotifier(notifier portssvc.NotificationSvc) AppointmentServiceOption {
	return func(s *appointmentService) {
		s.notifier = notifier
	}
}

// NewAppointmentService creates a new appointment service with the provided options
func NewAppointmentService(
	appointmentRepo portsrepo.AppointmentRepositoryWithTx,
	customerRepo portsrepo.CustomerReader,
	craftsmanRepo portsrepo.CraftsmanReader,
	materialRepo portsrepo.MaterialReader,
	options ...AppointmentServiceOption,
) portssvc.AppointmentSvcFacade {
	svc := &appointmentService{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		craftsmanRepo:   craftsmanRepo,
		materialRepo:    materialRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AppointmentSvcFacade = (*appointmentService)(nil)

// CreateAppointment schedules a new appointment awaiting approval.
func (s *appointmentService) CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest, creatorUserID string) (*domain.Appointment, error) {
	if req.CraftsmanID == "" {
		return nil, apperrors.NewValidationFailedError("craftsman_id is required")
	}
	if err := s.AuthorizeCraftsman(ctx, creatorUserID, req.CraftsmanID); err != nil {
		s.LogWarn(ctx, "User may not create appointments for craftsman",
			slog.String("user_id", creatorUserID),
			slog.String("craftsman_id", req.CraftsmanID))
		return nil, err
	}
	if req.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationFailedError("scheduled_at is required")
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("customer does not exist")
		}
		return nil, err
	}
	if customer.CraftsmanID != req.CraftsmanID {
		return nil, apperrors.NewValidationFailedError("customer does not belong to this craftsman")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultAppointmentMinutes
	}
	price := decimal.Zero
	if req.ServicePrice != nil {
		price = *req.ServicePrice
	}

	appt := domain.Appointment{
		AppointmentID:   uuid.NewString(),
		CraftsmanID:     req.CraftsmanID,
		CustomerID:      customer.CustomerID,
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		ScheduledAt:     req.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Location:        strings.TrimSpace(req.Location),
		ServiceType:     strings.TrimSpace(req.ServiceType),
		ServicePrice:    price,
		Notes:           req.Notes,
		Status:          domain.AppointmentScheduled,
		ApprovalStatus:  domain.ApprovalPending,
		Materials:       []domain.AppointmentMaterial{},
		AuditFields:     domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}
	if appt.Location == "" {
		appt.Location = customer.Address
	}

	if err := s.appointmentRepo.SaveAppointment(ctx, appt); err != nil {
		s.LogError(ctx, err, "Failed to save appointment", slog.String("craftsman_id", req.CraftsmanID))
		return nil, err
	}
	s.LogInfo(ctx, "Appointment created",
		slog.String("appointment_id", appt.AppointmentID),
		slog.String("craftsman_id", appt.CraftsmanID))
	return &appt, nil
}

// GetAppointmentByID retrieves an appointment with its materials.
func (s *appointmentService) GetAppointmentByID(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find appointment", slog.String("appointment_id", appointmentID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, requestingUserID, appt.CraftsmanID, "appointment"); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListAppointments lists appointments of the resolved craftsman.
func (s *appointmentService) ListAppointments(ctx context.Context, params dto.ListAppointmentsParams, requestingUserID string) ([]domain.Appointment, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, requestingUserID, params.CraftsmanID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.AppointmentListFilter{
		CustomerID:     params.CustomerID,
		Status:         domain.AppointmentStatus(params.Status),
		ApprovalStatus: domain.ApprovalStatus(params.ApprovalStatus),
		From:           params.From,
		Limit:          params.Limit,
		Offset:         params.Offset,
	}
	if params.To != nil {
		end := params.To.AddDate(0, 0, 1)
		filter.To = &end
	}

	appointments, err := s.appointmentRepo.ListAppointments(ctx, craftsmanID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list appointments", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	if appointments == nil {
		return []domain.Appointment{}, nil
	}
	return appointments, nil
}

// UpdateAppointment edits an appointment that has not been cancelled.
func (s *appointmentService) UpdateAppointment(ctx context.Context, appointmentID string, req dto.UpdateAppointmentRequest, requestingUserID string) (*domain.Appointment, error) {
	return s.mutate(ctx, appointmentID, requestingUserID, func(appt *domain.Appointment) error {
		if appt.Status == domain.AppointmentCancelled {
			return apperrors.NewValidationFailedError("cancelled appointment cannot be edited")
		}
		if req.ScheduledAt != nil {
			appt.ScheduledAt = req.ScheduledAt.UTC()
		}
		if req.DurationMinutes != nil {
			appt.DurationMinutes = *req.DurationMinutes
		}
		if req.Location != nil {
			appt.Location = strings.TrimSpace(*req.Location)
		}
		if req.ServiceType != nil {
			appt.ServiceType = strings.TrimSpace(*req.ServiceType)
		}
		if req.ServicePrice != nil {
			appt.ServicePrice = *req.ServicePrice
		}
		if req.Notes != nil {
			appt.Notes = *req.Notes
		}
		return nil
	})
}

// DeleteAppointment removes an appointment. Invoiced appointments cannot be deleted.
func (s *appointmentService) DeleteAppointment(ctx context.Context, appointmentID string, requestingUserID string) error {
	if _, err := s.GetAppointmentByID(ctx, appointmentID, requestingUserID); err != nil {
		return err
	}
	if err := s.appointmentRepo.DeleteAppointment(ctx, appointmentID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("appointment is referenced by an invoice")
		}
		s.LogError(ctx, err, "Failed to delete appointment", slog.String("appointment_id", appointmentID))
		return err
	}
	s.LogInfo(ctx, "Appointment deleted", slog.String("appointment_id", appointmentID))
	return nil
}

// ApproveAppointment approves a pending appointment and notifies the customer.
func (s *appointmentService) ApproveAppointment(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error) {
	appt, err := s.mutate(ctx, appointmentID, requestingUserID, func(a *domain.Appointment) error {
		return a.Approve()
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAppointmentDecision(string(domain.ApprovalApproved))
	s.LogInfo(ctx, "Appointment approved", slog.String("appointment_id", appointmentID))

	s.notifyCustomer(ctx, appt, func(craftsman *domain.Craftsman) error {
		return s.notifier.AppointmentApproved(ctx, appt, craftsman)
	})
	return appt, nil
}

// RejectAppointment rejects a pending appointment and notifies the customer.
func (s *appointmentService) RejectAppointment(ctx context.Context, appointmentID string, reason string, requestingUserID string) (*domain.Appointment, error) {
	appt, err := s.mutate(ctx, appointmentID, requestingUserID, func(a *domain.Appointment) error {
		return a.Reject(reason)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAppointmentDecision(string(domain.ApprovalRejected))
	s.LogInfo(ctx, "Appointment rejected", slog.String("appointment_id", appointmentID))

	s.notifyCustomer(ctx, appt, func(craftsman *domain.Craftsman) error {
		return s.notifier.AppointmentRejected(ctx, appt, craftsman, reason)
	})
	return appt, nil
}

// CompleteAppointment marks the appointment as done. When materials are given they
// replace the appointment's materials with the current unit prices as snapshot.
func (s *appointmentService) CompleteAppointment(ctx context.Context, appointmentID string, req dto.CompleteAppointmentRequest, requestingUserID string) (*domain.Appointment, error) {
	tx, err := s.appointmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.appointmentRepo.Rollback(ctx, tx)

	appt, err := s.appointmentRepo.FindAppointmentByIDForUpdate(ctx, tx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, requestingUserID, appt.CraftsmanID, "appointment"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := appt.Complete(now); err != nil {
		return nil, err
	}
	if req.ServicePrice != nil {
		appt.ServicePrice = *req.ServicePrice
	}

	if req.Materials != nil {
		materials, err := s.snapshotMaterials(ctx, appt, req.Materials)
		if err != nil {
			return nil, err
		}
		if err := s.appointmentRepo.ReplaceAppointmentMaterialsInTx(ctx, tx, appt.AppointmentID, materials); err != nil {
			s.LogError(ctx, err, "Failed to store appointment materials", slog.String("appointment_id", appointmentID))
			return nil, err
		}
		appt.Materials = materials
	}

	appt.Touch(requestingUserID, now)
	if err := s.appointmentRepo.UpdateAppointmentInTx(ctx, tx, *appt); err != nil {
		s.LogError(ctx, err, "Failed to update appointment", slog.String("appointment_id", appointmentID))
		return nil, err
	}
	if err := s.appointmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Appointment completed",
		slog.String("appointment_id", appointmentID),
		slog.Int("material_count", len(appt.Materials)))
	return appt, nil
}

// CancelAppointment cancels an appointment that has not been completed.
func (s *appointmentService) CancelAppointment(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error) {
	appt, err := s.mutate(ctx, appointmentID, requestingUserID, func(a *domain.Appointment) error {
		return a.Cancel()
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Appointment cancelled", slog.String("appointment_id", appointmentID))
	return appt, nil
}

// mutate locks the appointment row, applies change and writes the result in one transaction.
func (s *appointmentService) mutate(ctx context.Context, appointmentID, userID string, change func(*domain.Appointment) error) (*domain.Appointment, error) {
	tx, err := s.appointmentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.appointmentRepo.Rollback(ctx, tx)

	appt, err := s.appointmentRepo.FindAppointmentByIDForUpdate(ctx, tx, appointmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock appointment", slog.String("appointment_id", appointmentID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, userID, appt.CraftsmanID, "appointment"); err != nil {
		return nil, err
	}
	if err := change(appt); err != nil {
		return nil, err
	}

	appt.Touch(userID, time.Now().UTC())
	if err := s.appointmentRepo.UpdateAppointmentInTx(ctx, tx, *appt); err != nil {
		s.LogError(ctx, err, "Failed to update appointment", slog.String("appointment_id", appointmentID))
		return nil, err
	}
	if err := s.appointmentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) snapshotMaterials(ctx context.Context, appt *domain.Appointment, inputs []dto.AppointmentMaterialInput) ([]domain.AppointmentMaterial, error) {
	ids := make([]string, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.MaterialID] {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("material %s is listed twice", in.MaterialID))
		}
		if !in.Quantity.IsPositive() {
			return nil, apperrors.NewValidationFailedError("material quantity must be positive")
		}
		seen[in.MaterialID] = true
		ids = append(ids, in.MaterialID)
	}
	if len(ids) == 0 {
		return []domain.AppointmentMaterial{}, nil
	}

	catalogue, err := s.materialRepo.FindMaterialsByIDs(ctx, appt.CraftsmanID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load materials", slog.String("appointment_id", appt.AppointmentID))
		return nil, err
	}

	materials := make([]domain.AppointmentMaterial, 0, len(inputs))
	for _, in := range inputs {
		m, ok := catalogue[in.MaterialID]
		if !ok {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("material %s not found", in.MaterialID))
		}
		if !m.IsActive {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("material %s is inactive", m.Name))
		}
		materials = append(materials, domain.AppointmentMaterial{
			AppointmentID: appt.AppointmentID,
			MaterialID:    m.MaterialID,
			Name:          m.Name,
			Unit:          m.Unit,
			Quantity:      in.Quantity,
			UnitPrice:     m.UnitPrice,
		})
	}
	return materials, nil
}

// notifyCustomer sends a customer e-mail after a committed change. Failures are only logged.
func (s *appointmentService) notifyCustomer(ctx context.Context, appt *domain.Appointment, send func(*domain.Craftsman) error) {
	if s.notifier == nil {
		return
	}
	if appt.CustomerEmail == "" {
		s.LogDebug(ctx, "Customer has no email, notification skipped", slog.String("appointment_id", appt.AppointmentID))
		return
	}
	craftsman, err := s.craftsmanRepo.FindCraftsmanByID(ctx, appt.CraftsmanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load craftsman for notification", slog.String("appointment_id", appt.AppointmentID))
		return
	}
	if err := send(craftsman); err != nil {
		s.LogError(ctx, err, "Failed to send appointment notification", slog.String("appointment_id", appt.AppointmentID))
	}
}
