package mapping

import (
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/SscSPs/zimmr_backend/internal/models"
)

func ToModelAppointment(d domain.Appointment) models.Appointment {
	return models.Appointment{
		AppointmentID:   d.AppointmentID,
		CraftsmanID:     d.CraftsmanID,
		CustomerID:      d.CustomerID,
		CustomerName:    d.CustomerName,
		CustomerEmail:   NullString(d.CustomerEmail),
		ScheduledAt:     d.ScheduledAt,
		DurationMinutes: d.DurationMinutes,
		Location:        NullString(d.Location),
		ServiceType:     NullString(d.ServiceType),
		ServicePrice:    d.ServicePrice,
		Notes:           NullString(d.Notes),
		Status:          string(d.Status),
		ApprovalStatus:  string(d.ApprovalStatus),
		CompletedAt:     NullTime(d.CompletedAt),
		ReminderSentAt:  NullTime(d.ReminderSentAt),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAppointment maps the row only; materials are attached by the caller.
func ToDomainAppointment(m models.Appointment) domain.Appointment {
	return domain.Appointment{
		AppointmentID:   m.AppointmentID,
		CraftsmanID:     m.CraftsmanID,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail.String,
		ScheduledAt:     m.ScheduledAt,
		DurationMinutes: m.DurationMinutes,
		Location:        m.Location.String,
		ServiceType:     m.ServiceType.String,
		ServicePrice:    m.ServicePrice,
		Notes:           m.Notes.String,
		Status:          domain.AppointmentStatus(m.Status),
		ApprovalStatus:  domain.ApprovalStatus(m.ApprovalStatus),
		CompletedAt:     TimePtr(m.CompletedAt),
		ReminderSentAt:  TimePtr(m.ReminderSentAt),
		Materials:       []domain.AppointmentMaterial{},
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainAppointmentMaterial(m models.AppointmentMaterial) domain.AppointmentMaterial {
	return domain.AppointmentMaterial{
		AppointmentID: m.AppointmentID,
		MaterialID:    m.MaterialID,
		Name:          m.Name,
		Unit:          m.Unit,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
	}
}

func ToModelTimeEntry(d domain.TimeEntry) models.TimeEntry {
	m := models.TimeEntry{
		TimeEntryID:   d.TimeEntryID,
		CraftsmanID:   d.CraftsmanID,
		CustomerID:    NullStringPtr(d.CustomerID),
		AppointmentID: NullStringPtr(d.AppointmentID),
		Description:   NullString(d.Description),
		StartTime:     d.StartTime,
		EndTime:       NullTime(d.EndTime),
		BreakMinutes:  d.BreakMinutes,
		IsBillable:    d.IsBillable,
		HourlyRate:    d.HourlyRate,
		Notes:         NullString(d.Notes),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.DurationMinutes != nil {
		m.DurationMinutes.Int32 = int32(*d.DurationMinutes)
		m.DurationMinutes.Valid = true
	}
	return m
}

func ToDomainTimeEntry(m models.TimeEntry) domain.TimeEntry {
	d := domain.TimeEntry{
		TimeEntryID:   m.TimeEntryID,
		CraftsmanID:   m.CraftsmanID,
		CustomerID:    StringPtr(m.CustomerID),
		AppointmentID: StringPtr(m.AppointmentID),
		Description:   m.Description.String,
		StartTime:     m.StartTime,
		EndTime:       TimePtr(m.EndTime),
		BreakMinutes:  m.BreakMinutes,
		IsBillable:    m.IsBillable,
		HourlyRate:    m.HourlyRate,
		Notes:         m.Notes.String,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.DurationMinutes.Valid {
		minutes := int(m.DurationMinutes.Int32)
		d.DurationMinutes = &minutes
	}
	return d
}
