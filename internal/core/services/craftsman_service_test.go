package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeCraftsmanAccess(t *testing.T) {
	ctx := context.Background()
	own := &domain.Craftsman{CraftsmanID: "c-own", UserID: "u-own"}

	t.Run("own craftsman", func(t *testing.T) {
		craftsmanRepo, userRepo := new(MockCraftsmanRepository), new(MockUserRepository)
		svc := services.NewCraftsmanService(craftsmanRepo, userRepo)
		craftsmanRepo.On("FindCraftsmanByUserID", ctx, "u-own").Return(own, nil).Once()

		assert.NoError(t, svc.AuthorizeCraftsmanAccess(ctx, "u-own", "c-own"))
		userRepo.AssertNotCalled(t, "FindUserByID", ctx, "u-own")
	})

	t.Run("other craftsman", func(t *testing.T) {
		craftsmanRepo, userRepo := new(MockCraftsmanRepository), new(MockUserRepository)
		svc := services.NewCraftsmanService(craftsmanRepo, userRepo)
		craftsmanRepo.On("FindCraftsmanByUserID", ctx, "u-own").Return(own, nil).Once()
		userRepo.On("FindUserByID", ctx, "u-own").Return(&domain.User{UserID: "u-own", Role: domain.RoleCraftsman}, nil).Once()

		assert.ErrorIs(t, svc.AuthorizeCraftsmanAccess(ctx, "u-own", "c-other"), apperrors.ErrForbidden)
	})

	t.Run("admin without profile", func(t *testing.T) {
		craftsmanRepo, userRepo := new(MockCraftsmanRepository), new(MockUserRepository)
		svc := services.NewCraftsmanService(craftsmanRepo, userRepo)
		craftsmanRepo.On("FindCraftsmanByUserID", ctx, "u-admin").Return(nil, apperrors.ErrNotFound).Once()
		userRepo.On("FindUserByID", ctx, "u-admin").Return(&domain.User{UserID: "u-admin", Role: domain.RoleAdmin}, nil).Once()

		assert.NoError(t, svc.AuthorizeCraftsmanAccess(ctx, "u-admin", "c-other"))
	})
}

func TestResolveCraftsmanScope(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to own craftsman", func(t *testing.T) {
		craftsmanRepo := new(MockCraftsmanRepository)
		svc := services.NewCraftsmanService(craftsmanRepo, new(MockUserRepository))
		craftsmanRepo.On("FindCraftsmanByUserID", ctx, "u1").Return(&domain.Craftsman{CraftsmanID: "c1"}, nil).Once()

		id, err := svc.ResolveCraftsmanScope(ctx, "u1", "")

		require.NoError(t, err)
		assert.Equal(t, "c1", id)
	})

	t.Run("admin must name a craftsman", func(t *testing.T) {
		craftsmanRepo := new(MockCraftsmanRepository)
		svc := services.NewCraftsmanService(craftsmanRepo, new(MockUserRepository))
		craftsmanRepo.On("FindCraftsmanByUserID", ctx, "u-admin").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.ResolveCraftsmanScope(ctx, "u-admin", "")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
