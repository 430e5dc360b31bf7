package domain

// Customer is a client of a craftsman.
type Customer struct {
	CustomerID  string `json:"customerID"`
	CraftsmanID string `json:"craftsmanID"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ServiceType string `json:"serviceType"`
	Notes       string `json:"notes"`
	AuditFields
}

// HasEmail reports whether notifications can be delivered to the customer.
func (c *Customer) HasEmail() bool {
	return c.Email != ""
}
