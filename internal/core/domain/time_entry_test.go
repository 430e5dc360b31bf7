package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestTimeEntry_ComputeDuration(t *testing.T) {
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   domain.TimeEntry
		want    *int
		wantErr bool
	}{
		{
			name:  "running timer",
			entry: domain.TimeEntry{StartTime: start},
			want:  nil,
		},
		{
			name:  "with break",
			entry: domain.TimeEntry{StartTime: start, EndTime: timePtr(start.Add(8 * time.Hour)), BreakMinutes: 30},
			want:  intPtr(450),
		},
		{
			name:    "end before start",
			entry:   domain.TimeEntry{StartTime: start, EndTime: timePtr(start.Add(-time.Minute))},
			wantErr: true,
		},
		{
			name:    "break longer than period",
			entry:   domain.TimeEntry{StartTime: start, EndTime: timePtr(start.Add(20 * time.Minute)), BreakMinutes: 30},
			wantErr: true,
		},
		{
			name:    "negative break",
			entry:   domain.TimeEntry{StartTime: start, EndTime: timePtr(start.Add(time.Hour)), BreakMinutes: -5},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.ComputeDuration()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.entry.DurationMinutes)
		})
	}
}

func TestTimeEntry_BillableAmount(t *testing.T) {
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	entry := domain.TimeEntry{
		StartTime:  start,
		EndTime:    timePtr(start.Add(90 * time.Minute)),
		IsBillable: true,
		HourlyRate: decimal.NewNullDecimal(decimal.RequireFromString("48.00")),
	}
	require.NoError(t, entry.ComputeDuration())
	assert.True(t, decimal.RequireFromString("72.00").Equal(entry.BillableAmount()))

	entry.IsBillable = false
	assert.True(t, entry.BillableAmount().IsZero())

	running := domain.TimeEntry{StartTime: start, IsBillable: true, HourlyRate: entry.HourlyRate}
	assert.True(t, running.IsRunning())
	assert.True(t, running.BillableAmount().IsZero())
}

func intPtr(i int) *int {
	return &i
}
