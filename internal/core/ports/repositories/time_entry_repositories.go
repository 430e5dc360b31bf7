package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// TimeEntryListFilter narrows a time entry listing. Zero values are ignored.
type TimeEntryListFilter struct {
	CustomerID    string
	AppointmentID string
	From          *time.Time
	To            *time.Time
	Limit         int
	// Cursor position of the last entry of the previous page.
	AfterStart *time.Time
	AfterID    string
}

// TimeEntryRepositoryFacade defines persistence for time entries.
type TimeEntryRepositoryFacade interface {
	// FindTimeEntryByID retrieves a specific time entry.
	FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error)

	// FindRunningTimeEntry retrieves the craftsman's running timer, if any.
	FindRunningTimeEntry(ctx context.Context, craftsmanID string) (*domain.TimeEntry, error)

	// ListTimeEntries retrieves entries newest first using keyset pagination on (start_time, id).
	ListTimeEntries(ctx context.Context, craftsmanID string, filter TimeEntryListFilter) ([]domain.TimeEntry, error)

	// SaveTimeEntry persists a new time entry.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// UpdateTimeEntry updates an existing time entry.
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error

	// DeleteTimeEntry removes a time entry.
	DeleteTimeEntry(ctx context.Context, timeEntryID string) error
}
