package dto

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTimeEntryRequest defines the data needed to track time. Without EndTime the entry is a running timer.
type CreateTimeEntryRequest struct {
	CraftsmanID   string           `json:"craftsman_id"` // admins only
	CustomerID    *string          `json:"customer_id"`
	AppointmentID *string          `json:"appointment_id"`
	Description   string           `json:"description" binding:"max=1000"`
	StartTime     time.Time        `json:"start_time" binding:"required"`
	EndTime       *time.Time       `json:"end_time"`
	BreakMinutes  int              `json:"break_minutes" binding:"min=0"`
	IsBillable    *bool            `json:"is_billable"` // defaults to true
	HourlyRate    *decimal.Decimal `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes         string           `json:"notes"`
}

// UpdateTimeEntryRequest defines the editable fields. Nil fields are left unchanged.
type UpdateTimeEntryRequest struct {
	CustomerID    *string          `json:"customer_id"`
	AppointmentID *string          `json:"appointment_id"`
	Description   *string          `json:"description" binding:"omitempty,max=1000"`
	StartTime     *time.Time       `json:"start_time"`
	EndTime       *time.Time       `json:"end_time"`
	BreakMinutes  *int             `json:"break_minutes" binding:"omitempty,min=0"`
	IsBillable    *bool            `json:"is_billable"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes         *string          `json:"notes"`
}

// ListTimeEntriesParams defines query parameters for listing time entries.
type ListTimeEntriesParams struct {
	CraftsmanID   string     `form:"craftsman_id"`
	CustomerID    string     `form:"customer_id"`
	AppointmentID string     `form:"appointment_id"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"` // inclusive
	Limit         int        `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken     string     `form:"next_token"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	TimeEntryID     string           `json:"id"`
	CraftsmanID     string           `json:"craftsman_id"`
	CustomerID      *string          `json:"customer_id,omitempty"`
	AppointmentID   *string          `json:"appointment_id,omitempty"`
	Description     string           `json:"description"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         *time.Time       `json:"end_time,omitempty"`
	BreakMinutes    int              `json:"break_minutes"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	IsRunning       bool             `json:"is_running"`
	IsBillable      bool             `json:"is_billable"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate,omitempty"`
	BillableAmount  decimal.Decimal  `json:"billable_amount"`
	Notes           string           `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ListTimeEntriesResponse wraps a page of time entries.
type ListTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"time_entries"`
	NextToken   *string             `json:"next_token,omitempty"`
}

// ToTimeEntryResponse converts a domain.TimeEntry to TimeEntryResponse DTO
func ToTimeEntryResponse(t *domain.TimeEntry) TimeEntryResponse {
	res := TimeEntryResponse{
		TimeEntryID:     t.TimeEntryID,
		CraftsmanID:     t.CraftsmanID,
		CustomerID:      t.CustomerID,
		AppointmentID:   t.AppointmentID,
		Description:     t.Description,
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		BreakMinutes:    t.BreakMinutes,
		DurationMinutes: t.DurationMinutes,
		IsRunning:       t.IsRunning(),
		IsBillable:      t.IsBillable,
		BillableAmount:  t.BillableAmount(),
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.LastUpdatedAt,
	}
	if t.HourlyRate.Valid {
		rate := t.HourlyRate.Decimal
		res.HourlyRate = &rate
	}
	return res
}

// ToListTimeEntriesResponse converts a page of entries to ListTimeEntriesResponse
func ToListTimeEntriesResponse(entries []domain.TimeEntry, nextToken *string) ListTimeEntriesResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToTimeEntryResponse(&entries[i])
	}
	return ListTimeEntriesResponse{TimeEntries: res, NextToken: nextToken}
}
