package dto

import (
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines the query parameters of the business summary.
type SummaryParams struct {
	CraftsmanID string `form:"craftsman_id"`
	From        string `form:"from"` // YYYY-MM-DD, defaults to the first day of the current month
	To          string `form:"to"`   // YYYY-MM-DD, inclusive, defaults to today
}

// BusinessSummaryResponse represents the business summary report.
type BusinessSummaryResponse struct {
	CraftsmanID            string                           `json:"craftsman_id"`
	FromDate               string                           `json:"from_date"`
	ToDate                 string                           `json:"to_date"`
	PaidRevenue            decimal.Decimal                  `json:"paid_revenue"`
	OutstandingAmount      decimal.Decimal                  `json:"outstanding_amount"`
	OpenQuotesAmount       decimal.Decimal                  `json:"open_quotes_amount"`
	InvoiceCounts          map[domain.InvoiceStatus]int     `json:"invoice_counts"`
	AppointmentsByStatus   map[domain.AppointmentStatus]int `json:"appointments_by_status"`
	AppointmentsByApproval map[domain.ApprovalStatus]int    `json:"appointments_by_approval"`
	TrackedHours           decimal.Decimal                  `json:"tracked_hours"`
	BillableHours          decimal.Decimal                  `json:"billable_hours"`
	BillableAmount         decimal.Decimal                  `json:"billable_amount"`
}

// ToBusinessSummaryResponse converts the domain summary to its DTO. To is reported inclusively.
func ToBusinessSummaryResponse(s *domain.BusinessSummary) BusinessSummaryResponse {
	sixty := decimal.NewFromInt(60)
	return BusinessSummaryResponse{
		CraftsmanID:            s.CraftsmanID,
		FromDate:               s.From.Format("2006-01-02"),
		ToDate:                 s.To.AddDate(0, 0, -1).Format("2006-01-02"),
		PaidRevenue:            s.PaidRevenue,
		OutstandingAmount:      s.OutstandingAmount,
		OpenQuotesAmount:       s.OpenQuotesAmount,
		InvoiceCounts:          s.InvoiceCounts,
		AppointmentsByStatus:   s.AppointmentsByStatus,
		AppointmentsByApproval: s.AppointmentsByApproval,
		TrackedHours:           decimal.NewFromInt(int64(s.TrackedMinutes)).Div(sixty).Round(2),
		BillableHours:          decimal.NewFromInt(int64(s.BillableMinutes)).Div(sixty).Round(2),
		BillableAmount:         s.BillableAmount,
	}
}
