package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregate queries.
type ReportingRepositoryFacade interface {
	// GetBusinessSummary aggregates invoices, appointments and time entries of a
	// craftsman within [from, to).
	GetBusinessSummary(ctx context.Context, craftsmanID string, from, to time.Time) (*domain.BusinessSummary, error)
}
