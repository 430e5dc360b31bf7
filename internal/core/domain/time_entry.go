package domain

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TimeEntry is a tracked working period of a craftsman.
// An entry without EndTime is a running timer.
type TimeEntry struct {
	TimeEntryID     string              `json:"timeEntryID"`
	CraftsmanID     string              `json:"craftsmanID"`
	CustomerID      *string             `json:"customerID,omitempty"`
	AppointmentID   *string             `json:"appointmentID,omitempty"`
	Description     string              `json:"description"`
	StartTime       time.Time           `json:"startTime"`
	EndTime         *time.Time          `json:"endTime,omitempty"`
	BreakMinutes    int                 `json:"breakMinutes"`
	DurationMinutes *int                `json:"durationMinutes,omitempty"`
	IsBillable      bool                `json:"isBillable"`
	HourlyRate      decimal.NullDecimal `json:"hourlyRate"`
	Notes           string              `json:"notes"`
	AuditFields
}

// IsRunning reports whether the timer has not been stopped yet.
func (t *TimeEntry) IsRunning() bool {
	return t.EndTime == nil
}

// ComputeDuration sets DurationMinutes from start, end and break. Running entries get no duration.
func (t *TimeEntry) ComputeDuration() error {
	if t.BreakMinutes < 0 {
		return apperrors.NewValidationFailedError("break minutes cannot be negative")
	}
	if t.EndTime == nil {
		t.DurationMinutes = nil
		return nil
	}
	if t.EndTime.Before(t.StartTime) {
		return apperrors.NewValidationFailedError("end time is before start time")
	}
	minutes := int(t.EndTime.Sub(t.StartTime).Minutes()) - t.BreakMinutes
	if minutes < 0 {
		return apperrors.NewValidationFailedError("break is longer than the tracked period")
	}
	t.DurationMinutes = &minutes
	return nil
}

// BillableAmount is the net duration in hours times the hourly rate, rounded to cents.
// Non-billable, running or rate-less entries bill nothing.
func (t *TimeEntry) BillableAmount() decimal.Decimal {
	if !t.IsBillable || t.DurationMinutes == nil || !t.HourlyRate.Valid {
		return decimal.Zero
	}
	hours := decimal.NewFromInt(int64(*t.DurationMinutes)).Div(decimal.NewFromInt(60))
	return hours.Mul(t.HourlyRate.Decimal).Round(2)
}
