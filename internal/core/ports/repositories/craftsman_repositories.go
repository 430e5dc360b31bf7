package repositories

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CraftsmanReader defines read operations for craftsman profiles
type CraftsmanReader interface {
	// FindCraftsmanByID retrieves a craftsman by ID, including the owning user's e-mail.
	FindCraftsmanByID(ctx context.Context, craftsmanID string) (*domain.Craftsman, error)

	// FindCraftsmanByUserID retrieves the craftsman profile owned by a user.
	FindCraftsmanByUserID(ctx context.Context, userID string) (*domain.Craftsman, error)
}

// CraftsmanWriter defines write operations for craftsman profiles
type CraftsmanWriter interface {
	// SaveCraftsmanInTx persists a new craftsman inside an existing transaction.
	SaveCraftsmanInTx(ctx context.Context, tx pgx.Tx, craftsman domain.Craftsman) error

	// UpdateCraftsman updates the editable profile fields.
	UpdateCraftsman(ctx context.Context, craftsman domain.Craftsman) error
}

// CraftsmanRepositoryFacade combines all craftsman-related repository interfaces
type CraftsmanRepositoryFacade interface {
	CraftsmanReader
	CraftsmanWriter
}
