package services

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// ReportingSvc defines business reporting operations.
type ReportingSvc interface {
	// GetBusinessSummary aggregates a craftsman's figures within [from, to).
	GetBusinessSummary(ctx context.Context, requestedCraftsmanID string, from, to time.Time, requestingUserID string) (*domain.BusinessSummary, error)
}
