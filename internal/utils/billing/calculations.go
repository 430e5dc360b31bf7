package billing

import (
	"fmt"
	"strings"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineInput is an unpriced-or-priced line as submitted by a client.
type LineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	MaterialID  *string
}

// LineTotal multiplies quantity and unit price and rounds to cents.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// BuildItems validates the lines and turns them into numbered invoice items.
func BuildItems(lines []LineInput) ([]domain.InvoiceItem, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationFailedError("at least one line item is required")
	}
	items := make([]domain.InvoiceItem, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line.Description) == "" {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("item %d: description is required", i+1))
		}
		if !line.Quantity.IsPositive() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		if line.UnitPrice.IsNegative() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
		items = append(items, domain.InvoiceItem{
			Position:    i + 1,
			Description: strings.TrimSpace(line.Description),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   LineTotal(line.Quantity, line.UnitPrice),
			MaterialID:  line.MaterialID,
		})
	}
	return items, nil
}

// ComputeTotals sums the items and applies tax. An explicit taxAmount wins over
// taxRate (a percentage); with neither, tax is zero.
func ComputeTotals(items []domain.InvoiceItem, taxRate, taxAmount *decimal.Decimal) (amount, tax, total decimal.Decimal, err error) {
	amount = decimal.Zero
	for _, item := range items {
		amount = amount.Add(item.LineTotal)
	}
	amount = amount.Round(2)

	switch {
	case taxAmount != nil:
		if taxAmount.IsNegative() {
			return decimal.Zero, decimal.Zero, decimal.Zero, apperrors.NewValidationFailedError("tax amount cannot be negative")
		}
		tax = taxAmount.Round(2)
	case taxRate != nil:
		if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
			return decimal.Zero, decimal.Zero, decimal.Zero, apperrors.NewValidationFailedError("tax rate must be between 0 and 100")
		}
		tax = amount.Mul(*taxRate).Div(hundred).Round(2)
	default:
		tax = decimal.Zero
	}

	return amount, tax, amount.Add(tax), nil
}

// AppointmentItems turns a completed appointment into invoice lines: the service
// price first (when positive), then one line per material.
func AppointmentItems(appt *domain.Appointment) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(appt.Materials)+1)
	position := 1

	if appt.ServicePrice.IsPositive() {
		label := appt.ServiceType
		if strings.TrimSpace(label) == "" {
			label = "Service"
		}
		items = append(items, domain.InvoiceItem{
			Position:    position,
			Description: fmt.Sprintf("%s (%s)", label, appt.ScheduledAt.Format("02.01.2006")),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   appt.ServicePrice,
			LineTotal:   appt.ServicePrice.Round(2),
		})
		position++
	}

	for _, m := range appt.Materials {
		materialID := m.MaterialID
		description := m.Name
		if m.Unit != "" {
			description = fmt.Sprintf("%s (%s)", m.Name, m.Unit)
		}
		items = append(items, domain.InvoiceItem{
			Position:    position,
			Description: description,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			LineTotal:   m.LineTotal(),
			MaterialID:  &materialID,
		})
		position++
	}
	return items
}
