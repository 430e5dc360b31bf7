package repositories

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
)

// CustomerSpaceRepositoryFacade defines persistence for customer portals.
type CustomerSpaceRepositoryFacade interface {
	// FindSpaceByCustomerID retrieves the space of a customer.
	FindSpaceByCustomerID(ctx context.Context, customerID string) (*domain.CustomerSpace, error)

	// FindSpaceByTokenHash retrieves a space by the hash of its access token.
	FindSpaceByTokenHash(ctx context.Context, tokenHash string) (*domain.CustomerSpace, error)

	// UpsertSpace creates the customer's space or replaces its token and expiry.
	UpsertSpace(ctx context.Context, space domain.CustomerSpace) error

	// DeactivateSpace disables the space of a customer.
	DeactivateSpace(ctx context.Context, customerID string, userID string) error
}
