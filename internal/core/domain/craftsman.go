package domain

import "github.com/shopspring/decimal"

// Craftsman is the service-provider profile that owns customers, appointments,
// materials, invoices and time entries. Each craftsman belongs to exactly one user.
type Craftsman struct {
	CraftsmanID    string          `json:"craftsmanID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"` // from the owning user
	Phone          string          `json:"phone"`
	Specialty      string          `json:"specialty"`
	DefaultTaxRate decimal.Decimal `json:"defaultTaxRate"` // percent, e.g. 19
	AuditFields
}
