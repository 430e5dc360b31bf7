package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// craftsmanService implements the CraftsmanSvcFacade interface
type craftsmanService struct {
	BaseService
	craftsmanRepo portsrepo.CraftsmanRepositoryFacade
	userRepo      portsrepo.UserReader
}

// NewCraftsmanService creates a new craftsman service. It is its own authorizer.
func NewCraftsmanService(craftsmanRepo portsrepo.CraftsmanRepositoryFacade, userRepo portsrepo.UserReader) portssvc.CraftsmanSvcFacade {
	svc := &craftsmanService{
		craftsmanRepo: craftsmanRepo,
		userRepo:      userRepo,
	}
	svc.CraftsmanAuthorizer = svc
	return svc
}

var _ portssvc.CraftsmanSvcFacade = (*craftsmanService)(nil)

// AuthorizeCraftsmanAccess allows the craftsman's own user and admins.
func (s *craftsmanService) AuthorizeCraftsmanAccess(ctx context.Context, userID, craftsmanID string) error {
	own, err := s.craftsmanRepo.FindCraftsmanByUserID(ctx, userID)
	switch {
	case err == nil && own.CraftsmanID == craftsmanID:
		return nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load craftsman for authorization", slog.String("user_id", userID))
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to load user for authorization", slog.String("user_id", userID))
		return err
	}
	if user.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: user may not act for craftsman %s", apperrors.ErrForbidden, craftsmanID)
}

// ResolveCraftsmanScope returns requestedCraftsmanID if allowed, else the caller's own craftsman.
func (s *craftsmanService) ResolveCraftsmanScope(ctx context.Context, userID, requestedCraftsmanID string) (string, error) {
	if requestedCraftsmanID != "" {
		if err := s.AuthorizeCraftsmanAccess(ctx, userID, requestedCraftsmanID); err != nil {
			return "", err
		}
		return requestedCraftsmanID, nil
	}
	own, err := s.craftsmanRepo.FindCraftsmanByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NewValidationFailedError("craftsman_id is required for users without a craftsman profile")
		}
		return "", err
	}
	return own.CraftsmanID, nil
}

// GetCraftsmanByID retrieves a profile the requesting user may access.
func (s *craftsmanService) GetCraftsmanByID(ctx context.Context, craftsmanID string, requestingUserID string) (*domain.Craftsman, error) {
	if err := s.authorizeOwnership(ctx, requestingUserID, craftsmanID, "craftsman"); err != nil {
		return nil, err
	}
	return s.craftsmanRepo.FindCraftsmanByID(ctx, craftsmanID)
}

// GetCraftsmanForUser retrieves the profile owned by userID.
func (s *craftsmanService) GetCraftsmanForUser(ctx context.Context, userID string) (*domain.Craftsman, error) {
	craftsman, err := s.craftsmanRepo.FindCraftsmanByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find craftsman for user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return craftsman, nil
}

// UpdateCraftsmanForUser updates the profile owned by userID.
func (s *craftsmanService) UpdateCraftsmanForUser(ctx context.Context, req dto.UpdateCraftsmanRequest, userID string) (*domain.Craftsman, error) {
	craftsman, err := s.GetCraftsmanForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		craftsman.Name = name
	}
	if req.Phone != nil {
		craftsman.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Specialty != nil {
		craftsman.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.DefaultTaxRate != nil {
		craftsman.DefaultTaxRate = *req.DefaultTaxRate
	}
	craftsman.Touch(userID, time.Now().UTC())

	if err := s.craftsmanRepo.UpdateCraftsman(ctx, *craftsman); err != nil {
		s.LogError(ctx, err, "Failed to update craftsman", slog.String("craftsman_id", craftsman.CraftsmanID))
		return nil, err
	}
	s.LogInfo(ctx, "Craftsman profile updated", slog.String("craftsman_id", craftsman.CraftsmanID))
	return craftsman, nil
}
