package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/zimmr_backend/internal/models"
	"github.com/SscSPs/zimmr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCraftsmanRepository struct {
	BaseRepository
}

func newPgxCraftsmanRepository(db *pgxpool.Pool) portsrepo.CraftsmanRepositoryFacade {
	return &PgxCraftsmanRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CraftsmanRepositoryFacade = (*PgxCraftsmanRepository)(nil)

const craftsmanSelect = `
	SELECT c.craftsman_id, c.user_id, c.name, u.email, c.phone, c.specialty, c.default_tax_rate,
		c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
	FROM craftsmen c
	JOIN users u ON u.user_id = c.user_id
`

func (r *PgxCraftsmanRepository) findOne(ctx context.Context, where string, arg string) (*domain.Craftsman, error) {
	var m models.Craftsman
	err := r.Pool.QueryRow(ctx, craftsmanSelect+where, arg).Scan(
		&m.CraftsmanID,
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Specialty,
		&m.DefaultTaxRate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err, "craftsman")
	}
	craftsman := mapping.ToDomainCraftsman(m)
	return &craftsman, nil
}

func (r *PgxCraftsmanRepository) FindCraftsmanByID(ctx context.Context, craftsmanID string) (*domain.Craftsman, error) {
	return r.findOne(ctx, "WHERE c.craftsman_id = $1", craftsmanID)
}

func (r *PgxCraftsmanRepository) FindCraftsmanByUserID(ctx context.Context, userID string) (*domain.Craftsman, error) {
	return r.findOne(ctx, "WHERE c.user_id = $1", userID)
}

func (r *PgxCraftsmanRepository) SaveCraftsmanInTx(ctx context.Context, tx pgx.Tx, craftsman domain.Craftsman) error {
	m := mapping.ToModelCraftsman(craftsman)
	query := `
		INSERT INTO craftsmen (craftsman_id, user_id, name, phone, specialty, default_tax_rate,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.CraftsmanID,
		m.UserID,
		m.Name,
		m.Phone,
		m.Specialty,
		m.DefaultTaxRate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "craftsman")
	}
	return nil
}

func (r *PgxCraftsmanRepository) UpdateCraftsman(ctx context.Context, craftsman domain.Craftsman) error {
	m := mapping.ToModelCraftsman(craftsman)
	query := `
		UPDATE craftsmen
		SET name = $1, phone = $2, specialty = $3, default_tax_rate = $4, last_updated_at = $5, last_updated_by = $6
		WHERE craftsman_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Phone,
		m.Specialty,
		m.DefaultTaxRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CraftsmanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update craftsman %s: %w", m.CraftsmanID, err)
	}
	return expectOneRow(tag, "craftsman")
}
