package models

import "database/sql"

// Customer is the persisted customer record.
type Customer struct {
	CustomerID  string         `db:"customer_id"`
	CraftsmanID string         `db:"craftsman_id"`
	Name        string         `db:"name"`
	Email       sql.NullString `db:"email"`
	Phone       sql.NullString `db:"phone"`
	Address     sql.NullString `db:"address"`
	ServiceType sql.NullString `db:"service_type"`
	Notes       sql.NullString `db:"notes"`
	AuditFields
}

// CustomerSpace is the persisted customer portal access.
type CustomerSpace struct {
	SpaceID         string       `db:"space_id"`
	CustomerID      string       `db:"customer_id"`
	CraftsmanID     string       `db:"craftsman_id"`
	AccessTokenHash string       `db:"access_token_hash"`
	IsActive        bool         `db:"is_active"`
	ExpiresAt       sql.NullTime `db:"expires_at"`
	AuditFields
}
