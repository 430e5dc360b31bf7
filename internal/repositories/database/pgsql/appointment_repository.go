package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/zimmr_backend/internal/models"
	"github.com/SscSPs/zimmr_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAppointmentRepository struct {
	BaseRepository
}

func newPgxAppointmentRepository(db *pgxpool.Pool) portsrepo.AppointmentRepositoryWithTx {
	return &PgxAppointmentRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxAppointmentRepository implements portsrepo.AppointmentRepositoryWithTx
var _ portsrepo.AppointmentRepositoryWithTx = (*PgxAppointmentRepository)(nil)

const appointmentSelect = `
	SELECT a.appointment_id, a.craftsman_id, a.customer_id, c.name, c.email, a.scheduled_at, a.duration_minutes,
		a.location, a.service_type, a.service_price, a.notes, a.status, a.approval_status, a.completed_at,
		a.reminder_sent_at, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
	FROM appointments a
	JOIN customers c ON c.customer_id = a.customer_id
`

func scanAppointment(row pgx.Row) (domain.Appointment, error) {
	var m models.Appointment
	err := row.Scan(
		&m.AppointmentID,
		&m.CraftsmanID,
		&m.CustomerID,
		&m.CustomerName,
		&m.CustomerEmail,
		&m.ScheduledAt,
		&m.DurationMinutes,
		&m.Location,
		&m.ServiceType,
		&m.ServicePrice,
		&m.Notes,
		&m.Status,
		&m.ApprovalStatus,
		&m.CompletedAt,
		&m.ReminderSentAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Appointment{}, err
	}
	return mapping.ToDomainAppointment(m), nil
}

// loadMaterials fetches the materials of the given appointments keyed by appointment ID.
func loadMaterials(ctx context.Context, q querier, appointmentIDs []string) (map[string][]domain.AppointmentMaterial, error) {
	result := make(map[string][]domain.AppointmentMaterial, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT am.appointment_id, am.material_id, m.name, m.unit, am.quantity, am.unit_price
		FROM appointment_materials am
		JOIN materials m ON m.material_id = am.material_id
		WHERE am.appointment_id = ANY($1)
		ORDER BY am.appointment_id, m.name;
	`
	rows, err := q.Query(ctx, query, appointmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.AppointmentMaterial
		if err := rows.Scan(&m.AppointmentID, &m.MaterialID, &m.Name, &m.Unit, &m.Quantity, &m.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan appointment material row: %w", err)
		}
		result[m.AppointmentID] = append(result[m.AppointmentID], mapping.ToDomainAppointmentMaterial(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment material rows: %w", err)
	}
	return result, nil
}

func (r *PgxAppointmentRepository) findOne(ctx context.Context, q querier, query string, appointmentID string) (*domain.Appointment, error) {
	appointment, err := scanAppointment(q.QueryRow(ctx, query, appointmentID))
	if err != nil {
		return nil, translateError(err, "appointment")
	}
	materials, err := loadMaterials(ctx, q, []string{appointment.AppointmentID})
	if err != nil {
		return nil, err
	}
	if ms, ok := materials[appointment.AppointmentID]; ok {
		appointment.Materials = ms
	}
	return &appointment, nil
}

// queryAppointments runs a list query and attaches the materials of all returned rows.
func (r *PgxAppointmentRepository) queryAppointments(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments := []domain.Appointment{}
	ids := []string{}
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appointments = append(appointments, appointment)
		ids = append(ids, appointment.AppointmentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment rows: %w", err)
	}
	rows.Close()

	materials, err := loadMaterials(ctx, r.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if ms, ok := materials[appointments[i].AppointmentID]; ok {
			appointments[i].Materials = ms
		}
	}
	return appointments, nil
}

func (r *PgxAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	return r.findOne(ctx, r.Pool, appointmentSelect+" WHERE a.appointment_id = $1;", appointmentID)
}

func (r *PgxAppointmentRepository) FindAppointmentByIDForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (*domain.Appointment, error) {
	return r.findOne(ctx, tx, appointmentSelect+" WHERE a.appointment_id = $1 FOR UPDATE OF a;", appointmentID)
}

func (r *PgxAppointmentRepository) ListAppointments(ctx context.Context, craftsmanID string, filter portsrepo.AppointmentListFilter) ([]domain.Appointment, error) {
	limit, offset := limitOffset(filter.Limit, filter.Offset)

	conditions := []string{"a.craftsman_id = $1"}
	args := []any{craftsmanID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if filter.CustomerID != "" {
		add("a.customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		add("a.status = ?", string(filter.Status))
	}
	if filter.ApprovalStatus != "" {
		add("a.approval_status = ?", string(filter.ApprovalStatus))
	}
	if filter.From != nil {
		add("a.scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		add("a.scheduled_at < ?", *filter.To)
	}
	args = append(args, limit, offset)

	query := appointmentSelect +
		" WHERE " + strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY a.scheduled_at, a.appointment_id LIMIT $%d OFFSET $%d;", len(args)-1, len(args))
	return r.queryAppointments(ctx, query, args...)
}

func (r *PgxAppointmentRepository) ListAppointmentsForCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error) {
	query := appointmentSelect + " WHERE a.customer_id = $1 ORDER BY a.scheduled_at DESC, a.appointment_id;"
	return r.queryAppointments(ctx, query, customerID)
}

func (r *PgxAppointmentRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.scheduled_at >= $1 AND a.scheduled_at < $2
			AND a.status = 'scheduled'
			AND a.approval_status = 'approved'
			AND a.reminder_sent_at IS NULL
			AND COALESCE(c.email, '') <> ''
		ORDER BY a.scheduled_at, a.appointment_id;`
	return r.queryAppointments(ctx, query, from, to)
}

func insertAppointmentMaterials(ctx context.Context, tx pgx.Tx, appointmentID string, materials []domain.AppointmentMaterial) error {
	if len(materials) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO appointment_materials (appointment_id, material_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4);
	`
	for _, m := range materials {
		batch.Queue(query, appointmentID, m.MaterialID, m.Quantity, m.UnitPrice)
	}
	br := tx.SendBatch(ctx, batch)
	for range materials {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return translateError(err, "appointment material")
		}
	}
	return br.Close()
}

func (r *PgxAppointmentRepository) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAppointment(appointment)
	query := `
		INSERT INTO appointments (appointment_id, craftsman_id, customer_id, scheduled_at, duration_minutes, location,
			service_type, service_price, notes, status, approval_status, completed_at, reminder_sent_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		m.AppointmentID,
		m.CraftsmanID,
		m.CustomerID,
		m.ScheduledAt,
		m.DurationMinutes,
		m.Location,
		m.ServiceType,
		m.ServicePrice,
		m.Notes,
		m.Status,
		m.ApprovalStatus,
		m.CompletedAt,
		m.ReminderSentAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "appointment")
	}
	if err := insertAppointmentMaterials(ctx, tx, appointment.AppointmentID, appointment.Materials); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAppointmentRepository) UpdateAppointmentInTx(ctx context.Context, tx pgx.Tx, appointment domain.Appointment) error {
	m := mapping.ToModelAppointment(appointment)
	query := `
		UPDATE appointments
		SET scheduled_at = $1, duration_minutes = $2, location = $3, service_type = $4, service_price = $5,
			notes = $6, status = $7, approval_status = $8, completed_at = $9, reminder_sent_at = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE appointment_id = $13;
	`
	tag, err := tx.Exec(ctx, query,
		m.ScheduledAt,
		m.DurationMinutes,
		m.Location,
		m.ServiceType,
		m.ServicePrice,
		m.Notes,
		m.Status,
		m.ApprovalStatus,
		m.CompletedAt,
		m.ReminderSentAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.AppointmentID,
	)
	if err != nil {
		return translateError(err, "appointment")
	}
	return expectOneRow(tag, "appointment")
}

func (r *PgxAppointmentRepository) ReplaceAppointmentMaterialsInTx(ctx context.Context, tx pgx.Tx, appointmentID string, materials []domain.AppointmentMaterial) error {
	if _, err := tx.Exec(ctx, `DELETE FROM appointment_materials WHERE appointment_id = $1;`, appointmentID); err != nil {
		return fmt.Errorf("failed to clear appointment materials: %w", err)
	}
	return insertAppointmentMaterials(ctx, tx, appointmentID, materials)
}

func (r *PgxAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM appointments WHERE appointment_id = $1;`, appointmentID)
	if err != nil {
		return translateError(err, "appointment")
	}
	return expectOneRow(tag, "appointment")
}

func (r *PgxAppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID string, sentAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE appointments SET reminder_sent_at = $1 WHERE appointment_id = $2;`, sentAt, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent for appointment %s: %w", appointmentID, err)
	}
	return expectOneRow(tag, "appointment")
}
