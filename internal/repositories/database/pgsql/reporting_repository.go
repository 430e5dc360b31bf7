package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetBusinessSummary aggregates a craftsman's invoices, appointments and time entries in [from, to).
func (r *reportingRepository) GetBusinessSummary(ctx context.Context, craftsmanID string, from, to time.Time) (*domain.BusinessSummary, error) {
	summary := &domain.BusinessSummary{
		CraftsmanID:            craftsmanID,
		From:                   from,
		To:                     to,
		PaidRevenue:            decimal.Zero,
		OutstandingAmount:      decimal.Zero,
		OpenQuotesAmount:       decimal.Zero,
		InvoiceCounts:          map[domain.InvoiceStatus]int{},
		AppointmentsByStatus:   map[domain.AppointmentStatus]int{},
		AppointmentsByApproval: map[domain.ApprovalStatus]int{},
		BillableAmount:         decimal.Zero,
	}

	if err := r.sumInvoices(ctx, summary); err != nil {
		return nil, err
	}
	if err := r.countAppointments(ctx, summary); err != nil {
		return nil, err
	}
	if err := r.sumTime(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *reportingRepository) sumInvoices(ctx context.Context, s *domain.BusinessSummary) error {
	query := `
		SELECT type, status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM invoices
		WHERE craftsman_id = $1 AND issue_date >= $2 AND issue_date < $3
		GROUP BY type, status
	`
	rows, err := r.Pool.Query(ctx, query, s.CraftsmanID, s.From, s.To)
	if err != nil {
		return fmt.Errorf("error querying invoice totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			invoiceType, status string
			count               int
			total               decimal.Decimal
		)
		if err := rows.Scan(&invoiceType, &status, &count, &total); err != nil {
			return fmt.Errorf("error scanning invoice totals row: %w", err)
		}
		st := domain.InvoiceStatus(status)
		if domain.InvoiceType(invoiceType) == domain.InvoiceTypeQuote {
			if st == domain.InvoiceDraft || st == domain.InvoicePending {
				s.OpenQuotesAmount = s.OpenQuotesAmount.Add(total)
			}
			continue
		}
		s.InvoiceCounts[st] += count
		switch st {
		case domain.InvoicePaid:
			s.PaidRevenue = s.PaidRevenue.Add(total)
		case domain.InvoicePending:
			s.OutstandingAmount = s.OutstandingAmount.Add(total)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating invoice totals rows: %w", err)
	}
	return nil
}

func (r *reportingRepository) countAppointments(ctx context.Context, s *domain.BusinessSummary) error {
	query := `
		SELECT status, approval_status, COUNT(*)
		FROM appointments
		WHERE craftsman_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		GROUP BY status, approval_status
	`
	rows, err := r.Pool.Query(ctx, query, s.CraftsmanID, s.From, s.To)
	if err != nil {
		return fmt.Errorf("error querying appointment counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, approval string
		var count int
		if err := rows.Scan(&status, &approval, &count); err != nil {
			return fmt.Errorf("error scanning appointment counts row: %w", err)
		}
		s.AppointmentsByStatus[domain.AppointmentStatus(status)] += count
		s.AppointmentsByApproval[domain.ApprovalStatus(approval)] += count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating appointment counts rows: %w", err)
	}
	return nil
}

func (r *reportingRepository) sumTime(ctx context.Context, s *domain.BusinessSummary) error {
	query := `
		SELECT
			COALESCE(SUM(duration_minutes), 0),
			COALESCE(SUM(CASE WHEN is_billable THEN duration_minutes ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_billable AND hourly_rate IS NOT NULL
				THEN ROUND(duration_minutes * hourly_rate / 60.0, 2) ELSE 0 END), 0)
		FROM time_entries
		WHERE craftsman_id = $1 AND start_time >= $2 AND start_time < $3 AND end_time IS NOT NULL
	`
	err := r.Pool.QueryRow(ctx, query, s.CraftsmanID, s.From, s.To).Scan(
		&s.TrackedMinutes,
		&s.BillableMinutes,
		&s.BillableAmount,
	)
	if err != nil {
		return fmt.Errorf("error querying tracked time: %w", err)
	}
	return nil
}
