package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer sets the craftsman authorizer for the reporting service.
func WithReportingAuthorizer(authorizer portssvc.CraftsmanAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.CraftsmanAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingSvc {
	svc := &reportingService{reportingRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GetBusinessSummary aggregates a craftsman's figures within [from, to).
func (s *reportingService) GetBusinessSummary(ctx context.Context, requestedCraftsmanID string, from, to time.Time, requestingUserID string) (*domain.BusinessSummary, error) {
	if !from.Before(to) {
		return nil, apperrors.NewValidationFailedError("from must be before to")
	}
	craftsmanID, err := s.ResolveCraftsman(ctx, requestingUserID, requestedCraftsmanID)
	if err != nil {
		return nil, err
	}

	summary, err := s.reportingRepo.GetBusinessSummary(ctx, craftsmanID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build business summary",
			slog.String("craftsman_id", craftsmanID),
			slog.Time("from", from),
			slog.Time("to", to))
		return nil, err
	}

	s.LogDebug(ctx, "Business summary generated", slog.String("craftsman_id", craftsmanID))
	return summary, nil
}
