package services

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// MaterialSvcFacade defines operations on a craftsman's material catalogue.
type MaterialSvcFacade interface {
	CreateMaterial(ctx context.Context, req dto.CreateMaterialRequest, creatorUserID string) (*domain.Material, error)
	GetMaterialByID(ctx context.Context, materialID string, requestingUserID string) (*domain.Material, error)
	ListMaterials(ctx context.Context, params dto.ListMaterialsParams, requestingUserID string) ([]domain.Material, error)
	UpdateMaterial(ctx context.Context, materialID string, req dto.UpdateMaterialRequest, requestingUserID string) (*domain.Material, error)
	// DeactivateMaterial soft-deletes a material so historic appointment materials stay valid.
	DeactivateMaterial(ctx context.Context, materialID string, requestingUserID string) error
}
