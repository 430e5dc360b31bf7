package dto

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAppointmentRequest defines the data needed to schedule an appointment.
type CreateAppointmentRequest struct {
	CraftsmanID     string           `json:"craftsman_id" binding:"required"`
	CustomerID      string           `json:"customer_id" binding:"required"`
	ScheduledAt     time.Time        `json:"scheduled_at" binding:"required"`
	DurationMinutes int              `json:"duration_minutes" binding:"omitempty,min=0,max=1440"`
	Location        string           `json:"location"`
	ServiceType     string           `json:"service_type"`
	ServicePrice    *decimal.Decimal `json:"service_price" binding:"omitempty,gte=0"`
	Notes           string           `json:"notes"`
}

// UpdateAppointmentRequest defines the editable appointment fields. Nil fields are left unchanged.
type UpdateAppointmentRequest struct {
	ScheduledAt     *time.Time       `json:"scheduled_at"`
	DurationMinutes *int             `json:"duration_minutes" binding:"omitempty,min=0,max=1440"`
	Location        *string          `json:"location"`
	ServiceType     *string          `json:"service_type"`
	ServicePrice    *decimal.Decimal `json:"service_price" binding:"omitempty,gte=0"`
	Notes           *string          `json:"notes"`
}

// RejectAppointmentRequest carries the reason shown to the customer.
type RejectAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// AppointmentMaterialInput is one material used on an appointment.
type AppointmentMaterialInput struct {
	MaterialID string          `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"gt=0"`
}

// CompleteAppointmentRequest finishes an appointment.
type CompleteAppointmentRequest struct {
	ServicePrice *decimal.Decimal           `json:"service_price" binding:"omitempty,gte=0"`
	Materials    []AppointmentMaterialInput `json:"materials" binding:"omitempty,dive"`
}

// ListAppointmentsParams defines query parameters for listing appointments.
type ListAppointmentsParams struct {
	CraftsmanID    string     `form:"craftsman_id"`
	CustomerID     string     `form:"customer_id"`
	Status         string     `form:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	ApprovalStatus string     `form:"approval_status" binding:"omitempty,oneof=pending approved rejected"`
	From           *time.Time `form:"from" time_format:"2006-01-02"`
	To             *time.Time `form:"to" time_format:"2006-01-02"` // inclusive
	Limit          int        `form:"limit,default=100" binding:"min=1,max=500"`
	Offset         int        `form:"offset,default=0" binding:"min=0"`
}

// AppointmentMaterialResponse is a material used on an appointment.
type AppointmentMaterialResponse struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// AppointmentResponse defines the data returned for an appointment.
type AppointmentResponse struct {
	AppointmentID   string                        `json:"id"`
	CraftsmanID     string                        `json:"craftsman_id"`
	CustomerID      string                        `json:"customer_id"`
	CustomerName    string                        `json:"customer_name"`
	ScheduledAt     time.Time                     `json:"scheduled_at"`
	DurationMinutes int                           `json:"duration_minutes"`
	Location        string                        `json:"location"`
	ServiceType     string                        `json:"service_type"`
	ServicePrice    decimal.Decimal               `json:"service_price"`
	Notes           string                        `json:"notes"`
	Status          domain.AppointmentStatus      `json:"status"`
	ApprovalStatus  domain.ApprovalStatus         `json:"approval_status"`
	CompletedAt     *time.Time                    `json:"completed_at,omitempty"`
	ReminderSentAt  *time.Time                    `json:"reminder_sent_at,omitempty"`
	Materials       []AppointmentMaterialResponse `json:"materials"`
	Total           decimal.Decimal               `json:"total"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}

// ListAppointmentsResponse wraps the list of appointments.
type ListAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ToAppointmentResponse converts a domain.Appointment to AppointmentResponse DTO
func ToAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	materials := make([]AppointmentMaterialResponse, len(a.Materials))
	for i, m := range a.Materials {
		materials[i] = AppointmentMaterialResponse{
			MaterialID: m.MaterialID,
			Name:       m.Name,
			Unit:       m.Unit,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			LineTotal:  m.LineTotal(),
		}
	}
	return AppointmentResponse{
		AppointmentID:   a.AppointmentID,
		CraftsmanID:     a.CraftsmanID,
		CustomerID:      a.CustomerID,
		CustomerName:    a.CustomerName,
		ScheduledAt:     a.ScheduledAt,
		DurationMinutes: a.DurationMinutes,
		Location:        a.Location,
		ServiceType:     a.ServiceType,
		ServicePrice:    a.ServicePrice,
		Notes:           a.Notes,
		Status:          a.Status,
		ApprovalStatus:  a.ApprovalStatus,
		CompletedAt:     a.CompletedAt,
		ReminderSentAt:  a.ReminderSentAt,
		Materials:       materials,
		Total:           a.Total(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.LastUpdatedAt,
	}
}

// ToListAppointmentsResponse converts a slice of domain.Appointment to ListAppointmentsResponse
func ToListAppointmentsResponse(appointments []domain.Appointment) ListAppointmentsResponse {
	res := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		res[i] = ToAppointmentResponse(&appointments[i])
	}
	return ListAppointmentsResponse{Appointments: res}
}
