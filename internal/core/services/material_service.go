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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// materialService implements the MaterialSvcFacade interface
type materialService struct {
	BaseService
	materialRepo portsrepo.MaterialRepositoryFacade
}

// NewMaterialService creates a new material service.
func NewMaterialService(materialRepo portsrepo.MaterialRepositoryFacade, authorizer portssvc.CraftsmanAuthorizerSvc) portssvc.MaterialSvcFacade {
	svc := &materialService{materialRepo: materialRepo}
	svc.CraftsmanAuthorizer = authorizer
	return svc
}

var _ portssvc.MaterialSvcFacade = (*materialService)(nil)

func (s *materialService) CreateMaterial(ctx context.Context, req dto.CreateMaterialRequest, creatorUserID string) (*domain.Material, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, creatorUserID, req.CraftsmanID)
	if err != nil {
		return nil, err
	}
	if req.UnitPrice.IsNegative() {
		return nil, apperrors.NewValidationFailedError("unit price cannot be negative")
	}

	stock := decimal.Zero
	if req.StockQuantity != nil {
		stock = *req.StockQuantity
	}
	material := domain.Material{
		MaterialID:    uuid.NewString(),
		CraftsmanID:   craftsmanID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Unit:          strings.TrimSpace(req.Unit),
		UnitPrice:     req.UnitPrice,
		StockQuantity: stock,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}
	if material.Name == "" || material.Unit == "" {
		return nil, apperrors.NewValidationFailedError("name and unit are required")
	}

	if err := s.materialRepo.SaveMaterial(ctx, material); err != nil {
		s.LogError(ctx, err, "Failed to save material", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	s.LogInfo(ctx, "Material created", slog.String("material_id", material.MaterialID))
	return &material, nil
}

func (s *materialService) GetMaterialByID(ctx context.Context, materialID string, requestingUserID string) (*domain.Material, error) {
	material, err := s.materialRepo.FindMaterialByID(ctx, materialID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find material", slog.String("material_id", materialID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, requestingUserID, material.CraftsmanID, "material"); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *materialService) ListMaterials(ctx context.Context, params dto.ListMaterialsParams, requestingUserID string) ([]domain.Material, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, requestingUserID, params.CraftsmanID)
	if err != nil {
		return nil, err
	}
	materials, err := s.materialRepo.ListMaterials(ctx, craftsmanID, portsrepo.MaterialListFilter{
		Search:          strings.TrimSpace(params.Search),
		IncludeInactive: params.IncludeInactive,
		Limit:           params.Limit,
		Offset:          params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list materials", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	if materials == nil {
		return []domain.Material{}, nil
	}
	return materials, nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, materialID string, req dto.UpdateMaterialRequest, requestingUserID string) (*domain.Material, error) {
	material, err := s.GetMaterialByID(ctx, materialID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		material.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		material.Description = *req.Description
	}
	if req.Unit != nil {
		material.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.UnitPrice != nil {
		material.UnitPrice = *req.UnitPrice
	}
	if req.StockQuantity != nil {
		material.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}
	if material.Name == "" || material.Unit == "" {
		return nil, apperrors.NewValidationFailedError("name and unit cannot be empty")
	}
	if material.UnitPrice.IsNegative() || material.StockQuantity.IsNegative() {
		return nil, apperrors.NewValidationFailedError("unit price and stock quantity cannot be negative")
	}
	material.Touch(requestingUserID, time.Now().UTC())

	if err := s.materialRepo.UpdateMaterial(ctx, *material); err != nil {
		s.LogError(ctx, err, "Failed to update material", slog.String("material_id", materialID))
		return nil, err
	}
	return material, nil
}

func (s *materialService) DeactivateMaterial(ctx context.Context, materialID string, requestingUserID string) error {
	if _, err := s.GetMaterialByID(ctx, materialID, requestingUserID); err != nil {
		return err
	}
	if err := s.materialRepo.DeactivateMaterial(ctx, materialID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate material", slog.String("material_id", materialID))
		return err
	}
	s.LogInfo(ctx, "Material deactivated", slog.String("material_id", materialID))
	return nil
}
