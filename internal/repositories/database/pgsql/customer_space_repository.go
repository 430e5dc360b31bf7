package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/zimmr_backend/internal/models"
	"github.com/SscSPs/zimmr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerSpaceRepository struct {
	BaseRepository
}

func newPgxCustomerSpaceRepository(db *pgxpool.Pool) portsrepo.CustomerSpaceRepositoryFacade {
	return &PgxCustomerSpaceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CustomerSpaceRepositoryFacade = (*PgxCustomerSpaceRepository)(nil)

const customerSpaceColumns = `space_id, customer_id, craftsman_id, access_token_hash, is_active, expires_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCustomerSpace(row pgx.Row) (*domain.CustomerSpace, error) {
	var m models.CustomerSpace
	err := row.Scan(
		&m.SpaceID,
		&m.CustomerID,
		&m.CraftsmanID,
		&m.AccessTokenHash,
		&m.IsActive,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "customer space")
	}
	space := mapping.ToDomainCustomerSpace(m)
	return &space, nil
}

func (r *PgxCustomerSpaceRepository) FindSpaceByCustomerID(ctx context.Context, customerID string) (*domain.CustomerSpace, error) {
	query := `SELECT ` + customerSpaceColumns + ` FROM customer_spaces WHERE customer_id = $1;`
	return scanCustomerSpace(r.Pool.QueryRow(ctx, query, customerID))
}

func (r *PgxCustomerSpaceRepository) FindSpaceByTokenHash(ctx context.Context, tokenHash string) (*domain.CustomerSpace, error) {
	query := `SELECT ` + customerSpaceColumns + ` FROM customer_spaces WHERE access_token_hash = $1;`
	return scanCustomerSpace(r.Pool.QueryRow(ctx, query, tokenHash))
}

func (r *PgxCustomerSpaceRepository) UpsertSpace(ctx context.Context, space domain.CustomerSpace) error {
	m := mapping.ToModelCustomerSpace(space)
	query := `
		INSERT INTO customer_spaces (space_id, customer_id, craftsman_id, access_token_hash, is_active, expires_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (customer_id) DO UPDATE SET
			access_token_hash = EXCLUDED.access_token_hash,
			is_active = EXCLUDED.is_active,
			expires_at = EXCLUDED.expires_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SpaceID,
		m.CustomerID,
		m.CraftsmanID,
		m.AccessTokenHash,
		m.IsActive,
		m.ExpiresAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "customer space")
}

func (r *PgxCustomerSpaceRepository) DeactivateSpace(ctx context.Context, customerID string, userID string) error {
	query := `
		UPDATE customer_spaces
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE customer_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), userID, customerID)
	if err != nil {
		return fmt.Errorf("failed to deactivate customer space: %w", err)
	}
	return expectOneRow(tag, "customer space")
}
