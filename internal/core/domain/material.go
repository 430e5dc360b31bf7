package domain

import "github.com/shopspring/decimal"

// Material is a stock item a craftsman can use on appointments and bill for.
type Material struct {
	MaterialID    string          `json:"materialID"`
	CraftsmanID   string          `json:"craftsmanID"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"` // e.g. "m2", "piece", "kg"
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	StockQuantity decimal.Decimal `json:"stockQuantity"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
