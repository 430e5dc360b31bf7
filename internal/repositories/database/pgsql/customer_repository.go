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

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, craftsman_id, name, email, phone, address, service_type, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.CraftsmanID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.ServiceType,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Customer{}, err
	}
	return mapping.ToDomainCustomer(m), nil
}

func limitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		return nil, translateError(err, "customer")
	}
	return &customer, nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, craftsmanID string, filter portsrepo.CustomerListFilter) ([]domain.Customer, error) {
	limit, offset := limitOffset(filter.Limit, filter.Offset)
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE craftsman_id = $1
			AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%' OR phone ILIKE '%' || $2 || '%')
		ORDER BY name, customer_id
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, craftsmanID, filter.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", err)
	}
	return customers, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, craftsman_id, name, email, phone, address, service_type, notes,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.CraftsmanID,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.ServiceType,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "customer")
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4, service_type = $5, notes = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE customer_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.ServiceType,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CustomerID,
	)
	if err != nil {
		return translateError(err, "customer")
	}
	return expectOneRow(tag, "customer")
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return translateError(err, "customer")
	}
	return expectOneRow(tag, "customer")
}
