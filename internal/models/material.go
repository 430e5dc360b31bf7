package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Material is a catalogue entry of a craftsman.
type Material struct {
	MaterialID    string          `db:"material_id"`
	CraftsmanID   string          `db:"craftsman_id"`
	Name          string          `db:"name"`
	Description   sql.NullString  `db:"description"`
	Unit          string          `db:"unit"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	StockQuantity decimal.Decimal `db:"stock_quantity"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
