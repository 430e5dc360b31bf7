package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
)

type reminderService struct {
	BaseService
	appointmentRepo portsrepo.AppointmentRepositoryFacade
	craftsmanRepo   portsrepo.CraftsmanReader
	notifier        portssvc.NotificationSvc
}

// NewReminderService creates the service behind the nightly reminder job.
func NewReminderService(
	appointmentRepo portsrepo.AppointmentRepositoryFacade,
	craftsmanRepo portsrepo.CraftsmanReader,
	notifier portssvc.NotificationSvc,
) portssvc.ReminderSvc {
	return &reminderService{
		appointmentRepo: appointmentRepo,
		craftsmanRepo:   craftsmanRepo,
		notifier:        notifier,
	}
}

var _ portssvc.ReminderSvc = (*reminderService)(nil)

// SendDueReminders covers the calendar day (UTC) after now. Each appointment is reminded at most once.
func (s *reminderService) SendDueReminders(ctx context.Context, now time.Time) (int, error) {
	y, m, d := now.UTC().Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	due, err := s.appointmentRepo.ListDueReminders(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due reminders")
		return 0, err
	}

	craftsmen := make(map[string]*domain.Craftsman)
	sent := 0
	for i := range due {
		appt := &due[i]
		craftsman, ok := craftsmen[appt.CraftsmanID]
		if !ok {
			craftsman, err = s.craftsmanRepo.FindCraftsmanByID(ctx, appt.CraftsmanID)
			if err != nil {
				s.LogError(ctx, err, "Failed to load craftsman for reminder", slog.String("appointment_id", appt.AppointmentID))
				continue
			}
			craftsmen[appt.CraftsmanID] = craftsman
		}
		if err := s.notifier.AppointmentReminder(ctx, appt, craftsman); err != nil {
			s.LogError(ctx, err, "Failed to send reminder", slog.String("appointment_id", appt.AppointmentID))
			continue
		}
		if err := s.appointmentRepo.MarkReminderSent(ctx, appt.AppointmentID, now.UTC()); err != nil {
			s.LogError(ctx, err, "Failed to mark reminder as sent", slog.String("appointment_id", appt.AppointmentID))
			continue
		}
		sent++
	}
	s.LogInfo(ctx, "Appointment reminders processed",
		slog.Int("due", len(due)),
		slog.Int("sent", sent))
	return sent, nil
}
