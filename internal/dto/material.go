package dto

import (
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest defines the data needed to create a material.
type CreateMaterialRequest struct {
	CraftsmanID   string           `json:"craftsman_id"` // admins only
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Unit          string           `json:"unit" binding:"required"`
	UnitPrice     decimal.Decimal  `json:"unit_price" binding:"gte=0"`
	StockQuantity *decimal.Decimal `json:"stock_quantity" binding:"omitempty,gte=0"`
}

// UpdateMaterialRequest defines the editable material fields. Nil fields are left unchanged.
type UpdateMaterialRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1"`
	Description   *string          `json:"description"`
	Unit          *string          `json:"unit" binding:"omitempty,min=1"`
	UnitPrice     *decimal.Decimal `json:"unit_price" binding:"omitempty,gte=0"`
	StockQuantity *decimal.Decimal `json:"stock_quantity" binding:"omitempty,gte=0"`
	IsActive      *bool            `json:"is_active"`
}

// ListMaterialsParams defines query parameters for listing materials.
type ListMaterialsParams struct {
	CraftsmanID     string `form:"craftsman_id"`
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Limit           int    `form:"limit,default=100" binding:"min=1,max=500"`
	Offset          int    `form:"offset,default=0" binding:"min=0"`
}

// MaterialResponse defines the data returned for a material.
type MaterialResponse struct {
	MaterialID    string          `json:"id"`
	CraftsmanID   string          `json:"craftsman_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ListMaterialsResponse wraps the list of materials.
type ListMaterialsResponse struct {
	Materials []MaterialResponse `json:"materials"`
}

// ToMaterialResponse converts a domain.Material to MaterialResponse DTO
func ToMaterialResponse(m *domain.Material) MaterialResponse {
	return MaterialResponse{
		MaterialID:    m.MaterialID,
		CraftsmanID:   m.CraftsmanID,
		Name:          m.Name,
		Description:   m.Description,
		Unit:          m.Unit,
		UnitPrice:     m.UnitPrice,
		StockQuantity: m.StockQuantity,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.LastUpdatedAt,
	}
}

// ToListMaterialsResponse converts a slice of domain.Material to ListMaterialsResponse
func ToListMaterialsResponse(materials []domain.Material) ListMaterialsResponse {
	res := make([]MaterialResponse, len(materials))
	for i := range materials {
		res[i] = ToMaterialResponse(&materials[i])
	}
	return ListMaterialsResponse{Materials: res}
}
