package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/middleware"
	"github.com/SscSPs/zimmr_backend/internal/platform/metrics"
	"github.com/robfig/cron/v3"
)

const (
	reminderJob     = "appointment_reminders"
	reminderTimeout = 5 * time.Minute
)

// Scheduler runs background jobs on cron schedules evaluated in UTC.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger.With(slog.String("component", "scheduler"))}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		now:    time.Now,
	}
}

// AddReminderJob schedules the appointment reminder run. An empty spec leaves the job disabled.
func (s *Scheduler) AddReminderJob(spec string, reminders portssvc.ReminderSvc) error {
	if spec == "" {
		s.logger.Info("Appointment reminders disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { s.runReminders(context.Background(), reminders) }); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	s.logger.Info("Appointment reminders scheduled", slog.String("cron", spec))
	return nil
}

func (s *Scheduler) runReminders(ctx context.Context, reminders portssvc.ReminderSvc) {
	ctx, cancel := context.WithTimeout(ctx, reminderTimeout)
	defer cancel()

	logger := s.logger.With(slog.String("job", reminderJob))
	ctx = middleware.WithLogger(ctx, logger)

	start := s.now()
	sent, err := reminders.SendDueReminders(ctx, start)
	metrics.RecordJobRun(reminderJob, err == nil)
	if err != nil {
		logger.Error("Reminder run failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("Reminder run finished",
		slog.Int("sent", sent),
		slog.Duration("duration", s.now().Sub(start)))
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stopped before running jobs finished")
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
