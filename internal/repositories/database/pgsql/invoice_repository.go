package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/zimmr_backend/internal/models"
	"github.com/SscSPs/zimmr_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceSelect = `
	SELECT i.invoice_id, i.invoice_number, i.sequence_year, i.sequence_number, i.craftsman_id, i.customer_id,
		c.name, c.email, i.appointment_id, i.converted_from_id, i.type, i.status, i.amount, i.tax_rate, i.tax_amount,
		i.total_amount, i.issue_date, i.due_date, i.service_date, i.location, i.notes,
		i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
	FROM invoices i
	JOIN customers c ON c.customer_id = i.customer_id
`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.SequenceYear,
		&m.SequenceNumber,
		&m.CraftsmanID,
		&m.CustomerID,
		&m.CustomerName,
		&m.CustomerEmail,
		&m.AppointmentID,
		&m.ConvertedFromID,
		&m.Type,
		&m.Status,
		&m.Amount,
		&m.TaxRate,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.IssueDate,
		&m.DueDate,
		&m.ServiceDate,
		&m.Location,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	return mapping.ToDomainInvoice(m), nil
}

func loadInvoiceItems(ctx context.Context, q querier, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `
		SELECT item_id, invoice_id, position, description, quantity, unit_price, line_total, material_id
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position;
	`
	rows, err := q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	items := []domain.InvoiceItem{}
	for rows.Next() {
		var m models.InvoiceItem
		if err := rows.Scan(&m.ItemID, &m.InvoiceID, &m.Position, &m.Description, &m.Quantity, &m.UnitPrice, &m.LineTotal, &m.MaterialID); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item row: %w", err)
		}
		items = append(items, mapping.ToDomainInvoiceItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item rows: %w", err)
	}
	return items, nil
}

func (r *PgxInvoiceRepository) findOne(ctx context.Context, q querier, query string, arg string) (*domain.Invoice, error) {
	inv, err := scanInvoice(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translateError(err, "invoice")
	}
	items, err := loadInvoiceItems(ctx, q, inv.InvoiceID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findOne(ctx, r.Pool, invoiceSelect+" WHERE i.invoice_id = $1;", invoiceID)
}

func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	return r.findOne(ctx, tx, invoiceSelect+" WHERE i.invoice_id = $1 FOR UPDATE OF i;", invoiceID)
}

func (r *PgxInvoiceRepository) FindInvoiceByAppointmentID(ctx context.Context, appointmentID string) (*domain.Invoice, error) {
	query := invoiceSelect + " WHERE i.appointment_id = $1 AND i.type = 'invoice' AND i.status <> 'cancelled';"
	return r.findOne(ctx, r.Pool, query, appointmentID)
}

func (r *PgxInvoiceRepository) FindInvoiceByConvertedFromID(ctx context.Context, quoteID string) (*domain.Invoice, error) {
	return r.findOne(ctx, r.Pool, invoiceSelect+" WHERE i.converted_from_id = $1;", quoteID)
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, craftsmanID string, filter portsrepo.InvoiceListFilter) ([]domain.Invoice, error) {
	limit, offset := limitOffset(filter.Limit, filter.Offset)

	conditions := []string{"i.craftsman_id = $1"}
	args := []any{craftsmanID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if filter.Type != "" {
		add("i.type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		add("i.status = ?", string(filter.Status))
	}
	if filter.CustomerID != "" {
		add("i.customer_id = ?", filter.CustomerID)
	}
	if filter.From != nil {
		add("i.issue_date >= ?", *filter.From)
	}
	if filter.To != nil {
		add("i.issue_date < ?", *filter.To)
	}
	args = append(args, limit, offset)

	query := invoiceSelect +
		" WHERE " + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY i.issue_date DESC, i.created_at DESC, i.invoice_id LIMIT $%d OFFSET $%d;", len(args)-1, len(args))
	return r.queryInvoices(ctx, query, args...)
}

func (r *PgxInvoiceRepository) ListInvoicesForCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	query := invoiceSelect + `
		WHERE i.customer_id = $1 AND i.status <> 'draft'
		ORDER BY i.issue_date DESC, i.created_at DESC, i.invoice_id;`
	return r.queryInvoices(ctx, query, customerID)
}

// nextSequence serialises numbering per craftsman by locking the craftsman row.
func nextSequence(ctx context.Context, tx pgx.Tx, craftsmanID string, invoiceType domain.InvoiceType, year int) (int, error) {
	var locked string
	if err := tx.QueryRow(ctx, `SELECT craftsman_id FROM craftsmen WHERE craftsman_id = $1 FOR UPDATE;`, craftsmanID).Scan(&locked); err != nil {
		return 0, translateError(err, "craftsman")
	}
	var next int
	query := `
		SELECT COALESCE(MAX(sequence_number), 0) + 1
		FROM invoices
		WHERE craftsman_id = $1 AND type = $2 AND sequence_year = $3;
	`
	if err := tx.QueryRow(ctx, query, craftsmanID, string(invoiceType), year).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next invoice sequence: %w", err)
	}
	return next, nil
}

func insertInvoiceItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO invoice_items (item_id, invoice_id, position, description, quantity, unit_price, line_total, material_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i := range items {
		if items[i].ItemID == "" {
			items[i].ItemID = uuid.NewString()
		}
		items[i].InvoiceID = invoiceID
		m := mapping.ToModelInvoiceItem(items[i])
		batch.Queue(query, m.ItemID, m.InvoiceID, m.Position, m.Description, m.Quantity, m.UnitPrice, m.LineTotal, m.MaterialID)
	}
	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return translateError(err, "invoice item")
		}
	}
	return br.Close()
}

func (r *PgxInvoiceRepository) CreateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	year := invoice.IssueDate.Year()
	seq, err := nextSequence(ctx, tx, invoice.CraftsmanID, invoice.Type, year)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = domain.FormatInvoiceNumber(invoice.Type, year, seq)

	m := mapping.ToModelInvoice(*invoice)
	query := `
		INSERT INTO invoices (invoice_id, invoice_number, sequence_year, sequence_number, craftsman_id, customer_id,
			appointment_id, converted_from_id, type, status, amount, tax_rate, tax_amount, total_amount, issue_date, due_date,
			service_date, location, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		year,
		seq,
		m.CraftsmanID,
		m.CustomerID,
		m.AppointmentID,
		m.ConvertedFromID,
		m.Type,
		m.Status,
		m.Amount,
		m.TaxRate,
		m.TaxAmount,
		m.TotalAmount,
		m.IssueDate,
		m.DueDate,
		m.ServiceDate,
		m.Location,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "invoice")
	}
	return insertInvoiceItems(ctx, tx, invoice.InvoiceID, invoice.Items)
}

func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.CreateInvoiceInTx(ctx, tx, invoice); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET customer_id = $1, status = $2, amount = $3, tax_rate = $4, tax_amount = $5, total_amount = $6, issue_date = $7,
			due_date = $8, service_date = $9, location = $10, notes = $11, last_updated_at = $12, last_updated_by = $13
		WHERE invoice_id = $14;
	`
	tag, err := tx.Exec(ctx, query,
		m.CustomerID,
		m.Status,
		m.Amount,
		m.TaxRate,
		m.TaxAmount,
		m.TotalAmount,
		m.IssueDate,
		m.DueDate,
		m.ServiceDate,
		m.Location,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.InvoiceID,
	)
	if err != nil {
		return translateError(err, "invoice")
	}
	if err := expectOneRow(tag, "invoice"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice items: %w", err)
	}
	return insertInvoiceItems(ctx, tx, invoice.InvoiceID, invoice.Items)
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, userID string) error {
	query := `
		UPDATE invoices
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE invoice_id = $3;
	`
	tag, err := tx.Exec(ctx, query, string(status), userID, invoiceID)
	if err != nil {
		return translateError(err, "invoice")
	}
	return expectOneRow(tag, "invoice")
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return translateError(err, "invoice")
	}
	return expectOneRow(tag, "invoice")
}
