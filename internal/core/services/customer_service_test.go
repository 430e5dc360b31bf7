package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer_ScopedToCallerCraftsman(t *testing.T) {
	ctx := context.Background()
	repo, authorizer := new(MockCustomerRepository), new(MockAuthorizer)
	svc := services.NewCustomerService(repo, services.WithCustomerAuthorizer(authorizer))
	authorizer.On("ResolveCraftsmanScope", ctx, "u1", "").Return("c1", nil).Once()
	repo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CraftsmanID == "c1" && c.Name == "Erika Muster"
	})).Return(nil).Once()

	customer, err := svc.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "  Erika Muster "}, "u1")

	require.NoError(t, err)
	assert.Equal(t, "c1", customer.CraftsmanID)
	repo.AssertExpectations(t)
}

func TestCreateCustomer_WithoutAuthorizerDenied(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := services.NewCustomerService(repo)

	_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{Name: "Erika"}, "u1")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "SaveCustomer", mock.Anything, mock.Anything)
}

func TestDeleteCustomer_StillReferenced(t *testing.T) {
	ctx := context.Background()
	repo, authorizer := new(MockCustomerRepository), new(MockAuthorizer)
	svc := services.NewCustomerService(repo, services.WithCustomerAuthorizer(authorizer))
	repo.On("FindCustomerByID", ctx, "cust-1").Return(&domain.Customer{CustomerID: "cust-1", CraftsmanID: "c1"}, nil).Once()
	authorizer.On("AuthorizeCraftsmanAccess", ctx, "u1", "c1").Return(nil).Once()
	repo.On("DeleteCustomer", ctx, "cust-1").Return(apperrors.ErrConflict).Once()

	err := svc.DeleteCustomer(ctx, "cust-1", "u1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "customer still has appointments or invoices", apperrors.Message(err))
}
