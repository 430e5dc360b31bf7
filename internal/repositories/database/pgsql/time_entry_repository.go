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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTimeEntryRepository struct {
	BaseRepository
}

func newPgxTimeEntryRepository(db *pgxpool.Pool) portsrepo.TimeEntryRepositoryFacade {
	return &PgxTimeEntryRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TimeEntryRepositoryFacade = (*PgxTimeEntryRepository)(nil)

const timeEntryColumns = `time_entry_id, craftsman_id, customer_id, appointment_id, description, start_time, end_time,
	break_minutes, duration_minutes, is_billable, hourly_rate, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanTimeEntry(row pgx.Row) (domain.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.TimeEntryID,
		&m.CraftsmanID,
		&m.CustomerID,
		&m.AppointmentID,
		&m.Description,
		&m.StartTime,
		&m.EndTime,
		&m.BreakMinutes,
		&m.DurationMinutes,
		&m.IsBillable,
		&m.HourlyRate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	return mapping.ToDomainTimeEntry(m), nil
}

func (r *PgxTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE time_entry_id = $1;`
	entry, err := scanTimeEntry(r.Pool.QueryRow(ctx, query, timeEntryID))
	if err != nil {
		return nil, translateError(err, "time entry")
	}
	return &entry, nil
}

func (r *PgxTimeEntryRepository) FindRunningTimeEntry(ctx context.Context, craftsmanID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE craftsman_id = $1 AND end_time IS NULL LIMIT 1;`
	entry, err := scanTimeEntry(r.Pool.QueryRow(ctx, query, craftsmanID))
	if err != nil {
		return nil, translateError(err, "running time entry")
	}
	return &entry, nil
}

func (r *PgxTimeEntryRepository) ListTimeEntries(ctx context.Context, craftsmanID string, filter portsrepo.TimeEntryListFilter) ([]domain.TimeEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	conditions := []string{"craftsman_id = $1"}
	args := []any{craftsmanID}
	add := func(cond string, vals ...any) {
		for _, v := range vals {
			args = append(args, v)
			cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1)
		}
		conditions = append(conditions, cond)
	}
	if filter.CustomerID != "" {
		add("customer_id = ?", filter.CustomerID)
	}
	if filter.AppointmentID != "" {
		add("appointment_id = ?", filter.AppointmentID)
	}
	if filter.From != nil {
		add("start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		add("start_time < ?", *filter.To)
	}
	if filter.AfterStart != nil {
		add("(start_time, time_entry_id) < (?, ?)", *filter.AfterStart, filter.AfterID)
	}
	args = append(args, limit)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE ` + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY start_time DESC, time_entry_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}
	return entries, nil
}

func (r *PgxTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		INSERT INTO time_entries (time_entry_id, craftsman_id, customer_id, appointment_id, description, start_time,
			end_time, break_minutes, duration_minutes, is_billable, hourly_rate, notes,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TimeEntryID,
		m.CraftsmanID,
		m.CustomerID,
		m.AppointmentID,
		m.Description,
		m.StartTime,
		m.EndTime,
		m.BreakMinutes,
		m.DurationMinutes,
		m.IsBillable,
		m.HourlyRate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, "time entry")
}

func (r *PgxTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	m := mapping.ToModelTimeEntry(entry)
	query := `
		UPDATE time_entries
		SET customer_id = $1, appointment_id = $2, description = $3, start_time = $4, end_time = $5,
			break_minutes = $6, duration_minutes = $7, is_billable = $8, hourly_rate = $9, notes = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE time_entry_id = $13;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.AppointmentID,
		m.Description,
		m.StartTime,
		m.EndTime,
		m.BreakMinutes,
		m.DurationMinutes,
		m.IsBillable,
		m.HourlyRate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TimeEntryID,
	)
	if err != nil {
		return translateError(err, "time entry")
	}
	return expectOneRow(tag, "time entry")
}

func (r *PgxTimeEntryRepository) DeleteTimeEntry(ctx context.Context, timeEntryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM time_entries WHERE time_entry_id = $1;`, timeEntryID)
	if err != nil {
		return translateError(err, "time entry")
	}
	return expectOneRow(tag, "time entry")
}
