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

type PgxMaterialRepository struct {
	BaseRepository
}

func newPgxMaterialRepository(db *pgxpool.Pool) portsrepo.MaterialRepositoryFacade {
	return &PgxMaterialRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.MaterialRepositoryFacade = (*PgxMaterialRepository)(nil)

const materialColumns = `material_id, craftsman_id, name, description, unit, unit_price, stock_quantity, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanMaterial(row pgx.Row) (domain.Material, error) {
	var m models.Material
	err := row.Scan(
		&m.MaterialID,
		&m.CraftsmanID,
		&m.Name,
		&m.Description,
		&m.Unit,
		&m.UnitPrice,
		&m.StockQuantity,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Material{}, err
	}
	return mapping.ToDomainMaterial(m), nil
}

func (r *PgxMaterialRepository) FindMaterialByID(ctx context.Context, materialID string) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE material_id = $1;`
	material, err := scanMaterial(r.Pool.QueryRow(ctx, query, materialID))
	if err != nil {
		return nil, translateError(err, "material")
	}
	return &material, nil
}

func (r *PgxMaterialRepository) FindMaterialsByIDs(ctx context.Context, craftsmanID string, materialIDs []string) (map[string]domain.Material, error) {
	result := make(map[string]domain.Material, len(materialIDs))
	if len(materialIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + materialColumns + ` FROM materials WHERE craftsman_id = $1 AND material_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, craftsmanID, materialIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		result[material.MaterialID] = material
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}
	return result, nil
}

func (r *PgxMaterialRepository) ListMaterials(ctx context.Context, craftsmanID string, filter portsrepo.MaterialListFilter) ([]domain.Material, error) {
	limit, offset := limitOffset(filter.Limit, filter.Offset)
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE craftsman_id = $1
			AND ($2 OR is_active)
			AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
		ORDER BY name, material_id
		LIMIT $4 OFFSET $5;
	`
	rows, err := r.Pool.Query(ctx, query, craftsmanID, filter.IncludeInactive, filter.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	materials := []domain.Material{}
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		materials = append(materials, material)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}
	return materials, nil
}

func (r *PgxMaterialRepository) SaveMaterial(ctx context.Context, material domain.Material) error {
	m := mapping.ToModelMaterial(material)
	query := `
		INSERT INTO materials (material_id, craftsman_id, name, description, unit, unit_price, stock_quantity, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MaterialID,
		m.CraftsmanID,
		m.Name,
		m.Description,
		m.Unit,
		m.UnitPrice,
		m.StockQuantity,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "material")
}

func (r *PgxMaterialRepository) UpdateMaterial(ctx context.Context, material domain.Material) error {
	m := mapping.ToModelMaterial(material)
	query := `
		UPDATE materials
		SET name = $1, description = $2, unit = $3, unit_price = $4, stock_quantity = $5, is_active = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE material_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.Unit,
		m.UnitPrice,
		m.StockQuantity,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.MaterialID,
	)
	if err != nil {
		return translateError(err, "material")
	}
	return expectOneRow(tag, "material")
}

func (r *PgxMaterialRepository) DeactivateMaterial(ctx context.Context, materialID string, userID string) error {
	query := `
		UPDATE materials
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE material_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), userID, materialID)
	if err != nil {
		return fmt.Errorf("failed to deactivate material %s: %w", materialID, err)
	}
	return expectOneRow(tag, "material")
}
