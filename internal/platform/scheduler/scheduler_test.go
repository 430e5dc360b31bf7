package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReminderService struct {
	mock.Mock
}

func (m *mockReminderService) SendDueReminders(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddReminderJob_EmptySpecDisables(t *testing.T) {
	s := New(quietLogger())
	require.NoError(t, s.AddReminderJob("", new(mockReminderService)))
	assert.Empty(t, s.cron.Entries())
}

func TestAddReminderJob_InvalidSpec(t *testing.T) {
	s := New(quietLogger())
	err := s.AddReminderJob("every evening", new(mockReminderService))
	assert.Error(t, err)
	assert.Empty(t, s.cron.Entries())
}

func TestAddReminderJob_NextRunIsUTC(t *testing.T) {
	s := New(quietLogger())
	require.NoError(t, s.AddReminderJob("0 18 * * *", new(mockReminderService)))
	require.Len(t, s.cron.Entries(), 1)

	next := s.cron.Entries()[0].Schedule.Next(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC), next)
}

func TestRunReminders(t *testing.T) {
	fixed := time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)
	s := New(quietLogger())
	s.now = func() time.Time { return fixed }

	svc := new(mockReminderService)
	svc.On("SendDueReminders", mock.Anything, fixed).Return(3, nil).Once()

	s.runReminders(context.Background(), svc)
	svc.AssertExpectations(t)
}

func TestRunReminders_ErrorIsContained(t *testing.T) {
	s := New(quietLogger())
	svc := new(mockReminderService)
	svc.On("SendDueReminders", mock.Anything, mock.Anything).Return(0, errors.New("database unavailable")).Once()

	assert.NotPanics(t, func() { s.runReminders(context.Background(), svc) })
	svc.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s := New(quietLogger())
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
