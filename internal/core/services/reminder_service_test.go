package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSendDueReminders_CoversTomorrow(t *testing.T) {
	apptRepo := new(MockAppointmentRepository)
	craftsmanRepo := new(MockCraftsmanRepository)
	notifier := new(MockNotifier)
	svc := services.NewReminderService(apptRepo, craftsmanRepo, notifier)

	now := time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC)
	from := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)
	craftsman := &domain.Craftsman{CraftsmanID: "c1", Name: "Max", Email: "max@example.com"}
	due := []domain.Appointment{
		{AppointmentID: "a1", CraftsmanID: "c1", CustomerEmail: "one@example.com"},
		{AppointmentID: "a2", CraftsmanID: "c1", CustomerEmail: "two@example.com"},
		{AppointmentID: "a3", CraftsmanID: "c1", CustomerEmail: "three@example.com"},
	}

	apptRepo.On("ListDueReminders", mock.Anything, from, to).Return(due, nil).Once()
	craftsmanRepo.On("FindCraftsmanByID", mock.Anything, "c1").Return(craftsman, nil).Once()
	notifier.On("AppointmentReminder", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool { return a.AppointmentID != "a2" }), craftsman).Return(nil).Twice()
	notifier.On("AppointmentReminder", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool { return a.AppointmentID == "a2" }), craftsman).Return(assert.AnError).Once()
	apptRepo.On("MarkReminderSent", mock.Anything, "a1", now).Return(nil).Once()
	apptRepo.On("MarkReminderSent", mock.Anything, "a3", now).Return(nil).Once()

	sent, err := svc.SendDueReminders(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	apptRepo.AssertExpectations(t)
	apptRepo.AssertNotCalled(t, "MarkReminderSent", mock.Anything, "a2", mock.Anything)
	craftsmanRepo.AssertNumberOfCalls(t, "FindCraftsmanByID", 1)
}

func TestSendDueReminders_ListError(t *testing.T) {
	apptRepo := new(MockAppointmentRepository)
	svc := services.NewReminderService(apptRepo, new(MockCraftsmanRepository), new(MockNotifier))
	apptRepo.On("ListDueReminders", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	sent, err := svc.SendDueReminders(context.Background(), time.Now())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, sent)
}
