package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEUR formats an amount the way German invoices print it.
// Example: 1234.5 returns "1.234,50 €", -3 returns "-3,00 €"
func FormatEUR(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	b.WriteString(" €")
	return b.String()
}
