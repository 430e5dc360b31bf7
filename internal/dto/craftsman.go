package dto

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateCraftsmanRequest defines the editable profile fields. Nil fields are left unchanged.
type UpdateCraftsmanRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1"`
	Phone          *string          `json:"phone"`
	Specialty      *string          `json:"specialty"`
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate" binding:"omitempty,gte=0,lte=100"`
}

// CraftsmanResponse is a craftsman profile.
type CraftsmanResponse struct {
	CraftsmanID    string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Specialty      string          `json:"specialty"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCraftsmanResponse converts a domain.Craftsman to CraftsmanResponse DTO
func ToCraftsmanResponse(c *domain.Craftsman) CraftsmanResponse {
	return CraftsmanResponse{
		CraftsmanID:    c.CraftsmanID,
		UserID:         c.UserID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Specialty:      c.Specialty,
		DefaultTaxRate: c.DefaultTaxRate,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.LastUpdatedAt,
	}
}
