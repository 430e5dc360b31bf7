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
	"github.com/SscSPs/zimmr_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultTimeEntryPageSize = 50
	maxTimeEntryPageSize     = 200
)

// timeEntryService implements the TimeEntrySvcFacade interface
type timeEntryService struct {
	BaseService
	timeEntryRepo   portsrepo.TimeEntryRepositoryFacade
	customerRepo    portsrepo.CustomerReader
	appointmentRepo portsrepo.AppointmentReader
}

// NewTimeEntryService creates a new time entry service.
func NewTimeEntryService(
	timeEntryRepo portsrepo.TimeEntryRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	appointmentRepo portsrepo.AppointmentReader,
	authorizer portssvc.CraftsmanAuthorizerSvc,
) portssvc.TimeEntrySvcFacade {
	svc := &timeEntryService{
		timeEntryRepo:   timeEntryRepo,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
	}
	svc.CraftsmanAuthorizer = authorizer
	return svc
}

var _ portssvc.TimeEntrySvcFacade = (*timeEntryService)(nil)

// CreateTimeEntry records a finished period or starts a timer when no end time is given.
func (s *timeEntryService) CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, creatorUserID, req.CraftsmanID)
	if err != nil {
		return nil, err
	}

	entry := domain.TimeEntry{
		TimeEntryID:   uuid.NewString(),
		CraftsmanID:   craftsmanID,
		CustomerID:    emptyToNil(req.CustomerID),
		AppointmentID: emptyToNil(req.AppointmentID),
		Description:   strings.TrimSpace(req.Description),
		StartTime:     req.StartTime.UTC(),
		BreakMinutes:  req.BreakMinutes,
		IsBillable:    true,
		Notes:         req.Notes,
		AuditFields:   domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}
	if req.EndTime != nil {
		end := req.EndTime.UTC()
		entry.EndTime = &end
	}
	if req.IsBillable != nil {
		entry.IsBillable = *req.IsBillable
	}
	if req.HourlyRate != nil {
		entry.HourlyRate = decimal.NewNullDecimal(*req.HourlyRate)
	}
	if err := entry.ComputeDuration(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &entry); err != nil {
		return nil, err
	}

	if entry.IsRunning() {
		running, err := s.timeEntryRepo.FindRunningTimeEntry(ctx, craftsmanID)
		if err == nil {
			return nil, apperrors.NewConflictError("timer " + running.TimeEntryID + " is still running")
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.timeEntryRepo.SaveTimeEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save time entry", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	s.LogInfo(ctx, "Time entry created",
		slog.String("time_entry_id", entry.TimeEntryID),
		slog.Bool("running", entry.IsRunning()))
	return &entry, nil
}

func (s *timeEntryService) GetTimeEntryByID(ctx context.Context, timeEntryID string, requestingUserID string) (*domain.TimeEntry, error) {
	entry, err := s.timeEntryRepo.FindTimeEntryByID(ctx, timeEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find time entry", slog.String("time_entry_id", timeEntryID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, requestingUserID, entry.CraftsmanID, "time entry"); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListTimeEntries pages through entries newest first using an opaque cursor.
func (s *timeEntryService) ListTimeEntries(ctx context.Context, params dto.ListTimeEntriesParams, requestingUserID string) ([]domain.TimeEntry, *string, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, requestingUserID, params.CraftsmanID)
	if err != nil {
		return nil, nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit, defaultTimeEntryPageSize, maxTimeEntryPageSize)
	filter := portsrepo.TimeEntryListFilter{
		CustomerID:    params.CustomerID,
		AppointmentID: params.AppointmentID,
		From:          params.From,
		Limit:         limit + 1,
	}
	if params.To != nil {
		end := params.To.AddDate(0, 0, 1)
		filter.To = &end
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid next_token")
		}
		filter.AfterStart = &cursor.At
		filter.AfterID = cursor.ID
	}

	entries, err := s.timeEntryRepo.ListTimeEntries(ctx, craftsmanID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list time entries", slog.String("craftsman_id", craftsmanID))
		return nil, nil, err
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.StartTime, last.TimeEntryID)
		nextToken = &token
	}
	if entries == nil {
		entries = []domain.TimeEntry{}
	}
	return entries, nextToken, nil
}

func (s *timeEntryService) UpdateTimeEntry(ctx context.Context, timeEntryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error) {
	entry, err := s.GetTimeEntryByID(ctx, timeEntryID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		entry.CustomerID = emptyToNil(req.CustomerID)
	}
	if req.AppointmentID != nil {
		entry.AppointmentID = emptyToNil(req.AppointmentID)
	}
	if req.Description != nil {
		entry.Description = strings.TrimSpace(*req.Description)
	}
	if req.StartTime != nil {
		entry.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		end := req.EndTime.UTC()
		entry.EndTime = &end
	}
	if req.BreakMinutes != nil {
		entry.BreakMinutes = *req.BreakMinutes
	}
	if req.IsBillable != nil {
		entry.IsBillable = *req.IsBillable
	}
	if req.HourlyRate != nil {
		entry.HourlyRate = decimal.NewNullDecimal(*req.HourlyRate)
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if err := entry.ComputeDuration(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, entry); err != nil {
		return nil, err
	}
	entry.Touch(requestingUserID, time.Now().UTC())

	if err := s.timeEntryRepo.UpdateTimeEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update time entry", slog.String("time_entry_id", timeEntryID))
		return nil, err
	}
	return entry, nil
}

func (s *timeEntryService) DeleteTimeEntry(ctx context.Context, timeEntryID string, requestingUserID string) error {
	if _, err := s.GetTimeEntryByID(ctx, timeEntryID, requestingUserID); err != nil {
		return err
	}
	if err := s.timeEntryRepo.DeleteTimeEntry(ctx, timeEntryID); err != nil {
		s.LogError(ctx, err, "Failed to delete time entry", slog.String("time_entry_id", timeEntryID))
		return err
	}
	return nil
}

// checkReferences ensures linked customers and appointments belong to the entry's craftsman.
func (s *timeEntryService) checkReferences(ctx context.Context, entry *domain.TimeEntry) error {
	if entry.CustomerID != nil {
		customer, err := s.customerRepo.FindCustomerByID(ctx, *entry.CustomerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("customer does not exist")
			}
			return err
		}
		if customer.CraftsmanID != entry.CraftsmanID {
			return apperrors.NewValidationFailedError("customer does not belong to this craftsman")
		}
	}
	if entry.AppointmentID != nil {
		appt, err := s.appointmentRepo.FindAppointmentByID(ctx, *entry.AppointmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("appointment does not exist")
			}
			return err
		}
		if appt.CraftsmanID != entry.CraftsmanID {
			return apperrors.NewValidationFailedError("appointment does not belong to this craftsman")
		}
		if entry.CustomerID == nil {
			entry.CustomerID = &appt.CustomerID
		}
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
