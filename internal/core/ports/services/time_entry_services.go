package services

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// TimeEntrySvcFacade defines time tracking operations.
type TimeEntrySvcFacade interface {
	CreateTimeEntry(ctx context.Context, req dto.CreateTimeEntryRequest, creatorUserID string) (*domain.TimeEntry, error)
	GetTimeEntryByID(ctx context.Context, timeEntryID string, requestingUserID string) (*domain.TimeEntry, error)

	// ListTimeEntries returns one page of entries and the token of the next page, if any.
	ListTimeEntries(ctx context.Context, params dto.ListTimeEntriesParams, requestingUserID string) ([]domain.TimeEntry, *string, error)

	UpdateTimeEntry(ctx context.Context, timeEntryID string, req dto.UpdateTimeEntryRequest, requestingUserID string) (*domain.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, timeEntryID string, requestingUserID string) error
}
