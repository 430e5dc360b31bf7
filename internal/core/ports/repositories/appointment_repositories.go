package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AppointmentListFilter narrows an appointment listing. Zero values are ignored.
type AppointmentListFilter struct {
	CustomerID     string
	Status         domain.AppointmentStatus
	ApprovalStatus domain.ApprovalStatus
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// AppointmentReader defines read operations for appointments
type AppointmentReader interface {
	// FindAppointmentByID retrieves an appointment with its customer and materials.
	FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)

	// ListAppointments retrieves a craftsman's appointments ordered by scheduled time.
	ListAppointments(ctx context.Context, craftsmanID string, filter AppointmentListFilter) ([]domain.Appointment, error)

	// ListAppointmentsForCustomer retrieves the appointments of a customer, newest first.
	ListAppointmentsForCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error)

	// ListDueReminders retrieves approved, scheduled appointments in [from, to) that have
	// not been reminded yet and whose customer has an e-mail address.
	ListDueReminders(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

// AppointmentWriter defines write operations for appointments
type AppointmentWriter interface {
	// SaveAppointment persists a new appointment and its materials.
	SaveAppointment(ctx context.Context, appointment domain.Appointment) error

	// FindAppointmentByIDForUpdate loads an appointment and locks its row until the transaction ends.
	FindAppointmentByIDForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (*domain.Appointment, error)

	// UpdateAppointmentInTx writes all mutable appointment fields.
	UpdateAppointmentInTx(ctx context.Context, tx pgx.Tx, appointment domain.Appointment) error

	// ReplaceAppointmentMaterialsInTx replaces the materials used on an appointment.
	ReplaceAppointmentMaterialsInTx(ctx context.Context, tx pgx.Tx, appointmentID string, materials []domain.AppointmentMaterial) error

	// DeleteAppointment removes an appointment and its materials.
	DeleteAppointment(ctx context.Context, appointmentID string) error

	// MarkReminderSent records that the reminder for an appointment went out.
	MarkReminderSent(ctx context.Context, appointmentID string, sentAt time.Time) error
}

// AppointmentRepositoryFacade combines all appointment-related repository interfaces
type AppointmentRepositoryFacade interface {
	AppointmentReader
	AppointmentWriter
}

// AppointmentRepositoryWithTx extends AppointmentRepositoryFacade with transaction capabilities
type AppointmentRepositoryWithTx interface {
	AppointmentRepositoryFacade
	TransactionManager
}
