package services

import (
	"context"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/dto"
)

// AppointmentReaderSvc defines read operations for appointments
type AppointmentReaderSvc interface {
	GetAppointmentByID(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, params dto.ListAppointmentsParams, requestingUserID string) ([]domain.Appointment, error)
}

// AppointmentWriterSvc defines write operations for appointments
type AppointmentWriterSvc interface {
	CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest, creatorUserID string) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appointmentID string, req dto.UpdateAppointmentRequest, requestingUserID string) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string, requestingUserID string) error
}

// AppointmentWorkflowSvc defines the approval and completion lifecycle.
type AppointmentWorkflowSvc interface {
	// ApproveAppointment approves a pending appointment and notifies the customer.
	ApproveAppointment(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error)

	// RejectAppointment rejects a pending appointment, cancels it and notifies the customer.
	RejectAppointment(ctx context.Context, appointmentID string, reason string, requestingUserID string) (*domain.Appointment, error)

	// CompleteAppointment marks an appointment as done and snapshots the used materials.
	CompleteAppointment(ctx context.Context, appointmentID string, req dto.CompleteAppointmentRequest, requestingUserID string) (*domain.Appointment, error)

	// CancelAppointment cancels an appointment that has not been completed.
	CancelAppointment(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error)
}

// AppointmentSvcFacade combines all appointment-related service interfaces
type AppointmentSvcFacade interface {
	AppointmentReaderSvc
	AppointmentWriterSvc
	AppointmentWorkflowSvc
}
