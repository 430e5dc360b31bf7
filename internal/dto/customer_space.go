package dto

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerSpaceRequest creates or rotates a customer's portal token.
type CreateCustomerSpaceRequest struct {
	ExpiresInDays *int `json:"expires_in_days" binding:"omitempty,min=1,max=3650"`
}

// CustomerSpaceResponse is the status of a customer's portal.
type CustomerSpaceResponse struct {
	SpaceID    string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CustomerSpaceTokenResponse carries the raw access token. It is only returned once.
type CustomerSpaceTokenResponse struct {
	CustomerSpaceResponse
	AccessToken string `json:"access_token"`
	PortalURL   string `json:"portal_url"`
}

// CustomerSpaceGrant is returned by the service after creating a space.
type CustomerSpaceGrant struct {
	Space       *domain.CustomerSpace
	AccessToken string
	PortalURL   string
}

// PublicAppointmentRequest is an appointment requested by a customer through the portal.
type PublicAppointmentRequest struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=15,max=1440"`
	ServiceType     string    `json:"service_type" binding:"max=200"`
	Location        string    `json:"location" binding:"max=500"`
	Notes           string    `json:"notes" binding:"max=2000"`
}

// PublicCraftsmanResponse is the part of a craftsman profile shown to customers.
type PublicCraftsmanResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

// PublicAppointmentResponse is an appointment as shown to the customer.
type PublicAppointmentResponse struct {
	AppointmentID   string                   `json:"id"`
	ScheduledAt     time.Time                `json:"scheduled_at"`
	DurationMinutes int                      `json:"duration_minutes"`
	Location        string                   `json:"location"`
	ServiceType     string                   `json:"service_type"`
	Status          domain.AppointmentStatus `json:"status"`
	ApprovalStatus  domain.ApprovalStatus    `json:"approval_status"`
}

// PublicInvoiceResponse is an invoice or quote as shown to the customer.
type PublicInvoiceResponse struct {
	InvoiceID     string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	Type          domain.InvoiceType   `json:"type"`
	Status        domain.InvoiceStatus `json:"status"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	IssueDate     time.Time            `json:"issue_date"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
}

// CustomerPortalResponse is the customer's view of their space.
type CustomerPortalResponse struct {
	Customer     CustomerResponse            `json:"customer"`
	Craftsman    PublicCraftsmanResponse     `json:"craftsman"`
	Appointments []PublicAppointmentResponse `json:"appointments"`
	Invoices     []PublicInvoiceResponse     `json:"invoices"`
}

// ToCustomerSpaceResponse converts a domain.CustomerSpace to CustomerSpaceResponse DTO
func ToCustomerSpaceResponse(s *domain.CustomerSpace) CustomerSpaceResponse {
	return CustomerSpaceResponse{
		SpaceID:    s.SpaceID,
		CustomerID: s.CustomerID,
		IsActive:   s.IsActive,
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.LastUpdatedAt,
	}
}

// ToCustomerPortalResponse converts a portal view to its public DTO.
func ToCustomerPortalResponse(p *domain.CustomerPortal) CustomerPortalResponse {
	res := CustomerPortalResponse{
		Customer: ToCustomerResponse(&p.Customer),
		Craftsman: PublicCraftsmanResponse{
			Name:      p.Craftsman.Name,
			Email:     p.Craftsman.Email,
			Phone:     p.Craftsman.Phone,
			Specialty: p.Craftsman.Specialty,
		},
		Appointments: make([]PublicAppointmentResponse, len(p.Appointments)),
		Invoices:     make([]PublicInvoiceResponse, len(p.Invoices)),
	}
	for i, a := range p.Appointments {
		res.Appointments[i] = PublicAppointmentResponse{
			AppointmentID:   a.AppointmentID,
			ScheduledAt:     a.ScheduledAt,
			DurationMinutes: a.DurationMinutes,
			Location:        a.Location,
			ServiceType:     a.ServiceType,
			Status:          a.Status,
			ApprovalStatus:  a.ApprovalStatus,
		}
	}
	for i, inv := range p.Invoices {
		res.Invoices[i] = PublicInvoiceResponse{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			Type:          inv.Type,
			Status:        inv.Status,
			TotalAmount:   inv.TotalAmount,
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
		}
	}
	return res
}
