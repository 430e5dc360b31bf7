package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is the persisted time tracking row.
type TimeEntry struct {
	TimeEntryID     string              `db:"time_entry_id"`
	CraftsmanID     string              `db:"craftsman_id"`
	CustomerID      sql.NullString      `db:"customer_id"`
	AppointmentID   sql.NullString      `db:"appointment_id"`
	Description     sql.NullString      `db:"description"`
	StartTime       time.Time           `db:"start_time"`
	EndTime         sql.NullTime        `db:"end_time"`
	BreakMinutes    int                 `db:"break_minutes"`
	DurationMinutes sql.NullInt32       `db:"duration_minutes"`
	IsBillable      bool                `db:"is_billable"`
	HourlyRate      decimal.NullDecimal `db:"hourly_rate"`
	Notes           sql.NullString      `db:"notes"`
	AuditFields
}
