package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Appointment is the persisted appointment row. CustomerName and CustomerEmail are joined.
type Appointment struct {
	AppointmentID   string          `db:"appointment_id"`
	CraftsmanID     string          `db:"craftsman_id"`
	CustomerID      string          `db:"customer_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   sql.NullString  `db:"customer_email"`
	ScheduledAt     time.Time       `db:"scheduled_at"`
	DurationMinutes int             `db:"duration_minutes"`
	Location        sql.NullString  `db:"location"`
	ServiceType     sql.NullString  `db:"service_type"`
	ServicePrice    decimal.Decimal `db:"service_price"`
	Notes           sql.NullString  `db:"notes"`
	Status          string          `db:"status"`
	ApprovalStatus  string          `db:"approval_status"`
	CompletedAt     sql.NullTime    `db:"completed_at"`
	ReminderSentAt  sql.NullTime    `db:"reminder_sent_at"`
	AuditFields
}

// AppointmentMaterial is a material line of an appointment. Name and Unit are joined.
type AppointmentMaterial struct {
	AppointmentID string          `db:"appointment_id"`
	MaterialID    string          `db:"material_id"`
	Name          string          `db:"name"`
	Unit          string          `db:"unit"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
}
