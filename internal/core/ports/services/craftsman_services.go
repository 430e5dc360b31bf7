package services

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// CraftsmanReaderSvc defines read operations for craftsman profiles
type CraftsmanReaderSvc interface {
	// GetCraftsmanByID retrieves a profile the requesting user may access.
	GetCraftsmanByID(ctx context.Context, craftsmanID string, requestingUserID string) (*domain.Craftsman, error)

	// GetCraftsmanForUser retrieves the profile owned by userID.
	GetCraftsmanForUser(ctx context.Context, userID string) (*domain.Craftsman, error)
}

// CraftsmanWriterSvc defines write operations for craftsman profiles
type CraftsmanWriterSvc interface {
	// UpdateCraftsmanForUser updates the profile owned by userID.
	UpdateCraftsmanForUser(ctx context.Context, req dto.UpdateCraftsmanRequest, userID string) (*domain.Craftsman, error)
}

// CraftsmanAuthorizerSvc decides who may act on craftsman-owned data.
type CraftsmanAuthorizerSvc interface {
	// AuthorizeCraftsmanAccess allows the craftsman's own user and admins. Otherwise ErrForbidden.
	AuthorizeCraftsmanAccess(ctx context.Context, userID, craftsmanID string) error

	// ResolveCraftsmanScope returns the craftsman a request acts for: requestedCraftsmanID
	// if given and allowed, else the caller's own craftsman.
	ResolveCraftsmanScope(ctx context.Context, userID, requestedCraftsmanID string) (string, error)
}

// CraftsmanSvcFacade combines all craftsman-related service interfaces
type CraftsmanSvcFacade interface {
	CraftsmanReaderSvc
	CraftsmanWriterSvc
	CraftsmanAuthorizerSvc
}
