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

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		AppointmentID:  "appt-1",
		Status:         domain.AppointmentScheduled,
		ApprovalStatus: domain.ApprovalPending,
		Notes:          "Bathroom tiles, 2nd floor",
	}
}

func TestAppointment_Approve(t *testing.T) {
	appt := pendingAppointment()
	require.NoError(t, appt.Approve())
	assert.Equal(t, domain.ApprovalApproved, appt.ApprovalStatus)
	assert.Equal(t, domain.AppointmentScheduled, appt.Status)

	err := appt.Approve()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "already approved")
}

func TestAppointment_Reject(t *testing.T) {
	appt := pendingAppointment()
	require.NoError(t, appt.Reject("Customer not reachable"))

	assert.Equal(t, domain.ApprovalRejected, appt.ApprovalStatus)
	assert.Equal(t, domain.AppointmentCancelled, appt.Status)
	assert.Equal(t, "Bathroom tiles, 2nd floor\n\nRejection reason: Customer not reachable", appt.Notes)

	err := appt.Reject("again")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "already rejected")
}

func TestAppointment_RejectRefusesCompleted(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	appt := pendingAppointment()
	require.NoError(t, appt.Complete(now))

	err := appt.Reject("changed mind")
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "completed appointment cannot be rejected")
	assert.Equal(t, domain.AppointmentCompleted, appt.Status)
	assert.Equal(t, domain.ApprovalPending, appt.ApprovalStatus)
	assert.Equal(t, "Bathroom tiles, 2nd floor", appt.Notes)
	require.NotNil(t, appt.CompletedAt)
}

func TestAppointment_DecisionsAreFinal(t *testing.T) {
	approved := pendingAppointment()
	require.NoError(t, approved.Approve())
	assert.ErrorIs(t, approved.Reject("late"), apperrors.ErrValidation)
	assert.Equal(t, domain.ApprovalApproved, approved.ApprovalStatus)

	rejected := pendingAppointment()
	require.NoError(t, rejected.Reject("late"))
	assert.ErrorIs(t, rejected.Approve(), apperrors.ErrValidation)
	assert.Equal(t, domain.ApprovalRejected, rejected.ApprovalStatus)
}

func TestAppointment_Complete(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	appt := pendingAppointment()
	require.NoError(t, appt.Approve())
	require.NoError(t, appt.Complete(now))
	assert.Equal(t, domain.AppointmentCompleted, appt.Status)
	require.NotNil(t, appt.CompletedAt)
	assert.Equal(t, now, *appt.CompletedAt)
	assert.ErrorIs(t, appt.Complete(now), apperrors.ErrValidation)

	rejected := pendingAppointment()
	require.NoError(t, rejected.Reject(""))
	assert.ErrorIs(t, rejected.Complete(now), apperrors.ErrValidation)
}

func TestAppointment_Cancel(t *testing.T) {
	appt := pendingAppointment()
	require.NoError(t, appt.Cancel())
	assert.Equal(t, domain.AppointmentCancelled, appt.Status)
	assert.ErrorIs(t, appt.Cancel(), apperrors.ErrValidation)

	done := pendingAppointment()
	require.NoError(t, done.Complete(time.Now()))
	assert.ErrorIs(t, done.Cancel(), apperrors.ErrValidation)
}

func TestAppointment_Totals(t *testing.T) {
	appt := pendingAppointment()
	appt.ServicePrice = decimal.RequireFromString("120.00")
	appt.Materials = []domain.AppointmentMaterial{
		{MaterialID: "m1", Quantity: decimal.RequireFromString("12.5"), UnitPrice: decimal.RequireFromString("24.99")},
		{MaterialID: "m2", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("8.40")},
	}

	// 12.5 * 24.99 = 312.375 -> 312.38
	assert.True(t, decimal.RequireFromString("312.38").Equal(appt.Materials[0].LineTotal()))
	assert.True(t, decimal.RequireFromString("337.58").Equal(appt.MaterialsTotal()))
	assert.True(t, decimal.RequireFromString("457.58").Equal(appt.Total()))
}

func TestAppointment_CheckInvoiceable(t *testing.T) {
	appt := pendingAppointment()
	assert.ErrorIs(t, appt.CheckInvoiceable(), apperrors.ErrValidation)
	require.NoError(t, appt.Complete(time.Now()))
	assert.NoError(t, appt.CheckInvoiceable())
}

func TestAppendRejectionReason(t *testing.T) {
	tests := []struct {
		name   string
		notes  string
		reason string
		want   string
	}{
		{name: "empty notes", notes: "", reason: "Fully booked", want: "Rejection reason: Fully booked"},
		{name: "whitespace notes", notes: "  \n", reason: "Fully booked", want: "Rejection reason: Fully booked"},
		{name: "existing notes", notes: "Bring ladder", reason: " Fully booked ", want: "Bring ladder\n\nRejection reason: Fully booked"},
		{name: "empty reason", notes: "", reason: "", want: "Rejection reason: no reason given"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.AppendRejectionReason(tt.notes, tt.reason))
		})
	}
}
