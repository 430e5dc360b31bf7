package domain

import "time"

// CustomerSpace is the token-protected portal of a single customer.
type CustomerSpace struct {
	SpaceID         string     `json:"spaceID"`
	CustomerID      string     `json:"customerID"`
	CraftsmanID     string     `json:"craftsmanID"`
	AccessTokenHash string     `json:"-"`
	IsActive        bool       `json:"isActive"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	AuditFields
}

// IsUsable reports whether the portal may be opened at the given time.
func (s *CustomerSpace) IsUsable(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}

// CustomerPortal is what a customer sees when opening their space.
type CustomerPortal struct {
	Customer     Customer
	Craftsman    Craftsman
	Appointments []Appointment
	Invoices     []Invoice
}
