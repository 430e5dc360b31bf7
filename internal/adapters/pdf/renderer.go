package pdf

import (
	"fmt"
	"strings"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/utils"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const dateLayout = "02.01.2006"

var (
	titleStyle  = props.Text{Size: 16, Style: fontstyle.Bold}
	boldStyle   = props.Text{Size: 9, Style: fontstyle.Bold}
	normalStyle = props.Text{Size: 9}
	mutedStyle  = props.Text{Size: 8, Style: fontstyle.Italic}
	rightStyle  = props.Text{Size: 9, Align: align.Right}
	rightBold   = props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold}
)

// Renderer lays out invoices and quotes as A4 PDFs.
type Renderer struct{}

var _ portssvc.DocumentRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderInvoice returns the PDF bytes of doc.
func (r *Renderer) RenderInvoice(doc domain.InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	addHeader(m, doc)
	addParties(m, doc)
	addItems(m, doc.Invoice)
	addTotals(m, doc.Invoice)
	addFooter(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF for %s: %w", doc.Invoice.InvoiceNumber, err)
	}
	return out.GetBytes(), nil
}

func title(inv domain.Invoice) string {
	if inv.Type == domain.InvoiceTypeQuote {
		return "Quote"
	}
	return "Invoice"
}

func addHeader(m core.Maroto, doc domain.InvoiceDocument) {
	inv := doc.Invoice
	m.AddRow(10,
		text.NewCol(8, title(inv)+" "+inv.InvoiceNumber, titleStyle),
		text.NewCol(4, doc.Craftsman.Name, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)
	if inv.Status == domain.InvoiceCancelled {
		m.AddRows(text.NewRow(6, "CANCELLED", props.Text{Size: 10, Style: fontstyle.Bold}))
	}
	m.AddRows(line.NewRow(4))
}

func addParties(m core.Maroto, doc domain.InvoiceDocument) {
	inv := doc.Invoice
	customer := []string{doc.Customer.Name}
	customer = append(customer, splitLines(doc.Customer.Address)...)
	if doc.Customer.Email != "" {
		customer = append(customer, doc.Customer.Email)
	}

	meta := [][2]string{{"Issue date", inv.IssueDate.Format(dateLayout)}}
	if inv.ServiceDate != nil {
		meta = append(meta, [2]string{"Service date", inv.ServiceDate.Format(dateLayout)})
	}
	if inv.DueDate != nil {
		label := "Due date"
		if inv.Type == domain.InvoiceTypeQuote {
			label = "Valid until"
		}
		meta = append(meta, [2]string{label, inv.DueDate.Format(dateLayout)})
	}
	if inv.Location != "" {
		meta = append(meta, [2]string{"Location", inv.Location})
	}

	contact := []string{doc.Craftsman.Email, doc.Craftsman.Phone, doc.Craftsman.Specialty}

	rows := max(len(customer), len(meta), len(contact))
	m.AddRow(6, text.NewCol(6, "Bill to", boldStyle), col.New(6))
	for i := 0; i < rows; i++ {
		cols := []core.Col{textOrEmpty(6, at(customer, i), normalStyle)}
		if i < len(meta) {
			cols = append(cols, text.NewCol(3, meta[i][0], boldStyle), text.NewCol(3, meta[i][1], rightStyle))
		} else {
			cols = append(cols, col.New(3), textOrEmpty(3, at(contact, i-len(meta)), rightStyle))
		}
		m.AddRow(5, cols...)
	}
	m.AddRows(line.NewRow(6))
}

func addItems(m core.Maroto, inv domain.Invoice) {
	m.AddRow(7,
		text.NewCol(1, "#", boldStyle),
		text.NewCol(5, "Description", boldStyle),
		text.NewCol(2, "Quantity", rightBold),
		text.NewCol(2, "Unit price", rightBold),
		text.NewCol(2, "Total", rightBold),
	)
	for _, item := range inv.Items {
		m.AddRow(6,
			text.NewCol(1, fmt.Sprintf("%d", item.Position), normalStyle),
			text.NewCol(5, item.Description, normalStyle),
			text.NewCol(2, item.Quantity.String(), rightStyle),
			text.NewCol(2, utils.FormatEUR(item.UnitPrice), rightStyle),
			text.NewCol(2, utils.FormatEUR(item.LineTotal), rightStyle),
		)
	}
	m.AddRows(line.NewRow(6))
}

func addTotals(m core.Maroto, inv domain.Invoice) {
	m.AddRow(6, col.New(7), text.NewCol(3, "Net amount", normalStyle), text.NewCol(2, utils.FormatEUR(inv.Amount), rightStyle))
	m.AddRow(6, col.New(7), text.NewCol(3, "Tax", normalStyle), text.NewCol(2, utils.FormatEUR(inv.TaxAmount), rightStyle))
	m.AddRow(8, col.New(7), text.NewCol(3, "Total", boldStyle), text.NewCol(2, utils.FormatEUR(inv.TotalAmount), rightBold))
}

func addFooter(m core.Maroto, doc domain.InvoiceDocument) {
	if notes := strings.TrimSpace(doc.Invoice.Notes); notes != "" {
		m.AddRows(text.NewRow(8, "Notes", boldStyle))
		for _, l := range splitLines(notes) {
			m.AddRows(text.NewRow(5, l, normalStyle))
		}
	}
	if doc.Invoice.Type == domain.InvoiceTypeInvoice && doc.Invoice.DueDate != nil {
		m.AddRows(text.NewRow(10,
			fmt.Sprintf("Please transfer the total by %s quoting %s.", doc.Invoice.DueDate.Format(dateLayout), doc.Invoice.InvoiceNumber),
			mutedStyle))
	}
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

func textOrEmpty(size int, value string, style props.Text) core.Col {
	if value == "" {
		return col.New(size)
	}
	return text.NewCol(size, value, style)
}
