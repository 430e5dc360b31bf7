package repositories

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// MaterialListFilter narrows a material listing.
type MaterialListFilter struct {
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// MaterialReader defines read operations for materials
type MaterialReader interface {
	// FindMaterialByID retrieves a specific material by ID.
	FindMaterialByID(ctx context.Context, materialID string) (*domain.Material, error)

	// FindMaterialsByIDs retrieves the given materials of one craftsman, keyed by ID.
	// Missing IDs are simply absent from the result.
	FindMaterialsByIDs(ctx context.Context, craftsmanID string, materialIDs []string) (map[string]domain.Material, error)

	// ListMaterials retrieves a craftsman's materials ordered by name.
	ListMaterials(ctx context.Context, craftsmanID string, filter MaterialListFilter) ([]domain.Material, error)
}

// MaterialWriter defines write operations for materials
type MaterialWriter interface {
	// SaveMaterial persists a new material.
	SaveMaterial(ctx context.Context, material domain.Material) error

	// UpdateMaterial updates an existing material.
	UpdateMaterial(ctx context.Context, material domain.Material) error

	// DeactivateMaterial soft-deletes a material.
	DeactivateMaterial(ctx context.Context, materialID string, userID string) error
}

// MaterialRepositoryFacade combines all material-related repository interfaces
type MaterialRepositoryFacade interface {
	MaterialReader
	MaterialWriter
}
