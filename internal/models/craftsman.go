package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Craftsman is the persisted craftsman profile. Email is joined from users.
type Craftsman struct {
	CraftsmanID    string          `db:"craftsman_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          sql.NullString  `db:"phone"`
	Specialty      sql.NullString  `db:"specialty"`
	DefaultTaxRate decimal.Decimal `db:"default_tax_rate"`
	AuditFields
}
