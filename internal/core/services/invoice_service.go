package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/SscSPs/zimmr_backend/internal/platform/metrics"
	"github.com/SscSPs/zimmr_backend/internal/utils/billing"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo      portsrepo.InvoiceRepositoryWithTx
	appointmentRepo  portsrepo.AppointmentRepositoryFacade
	customerRepo     portsrepo.CustomerReader
	craftsmanRepo    portsrepo.CraftsmanReader
	materialRepo     portsrepo.MaterialReader
	renderer         portssvc.DocumentRenderer
	notifier         portssvc.NotificationSvc
	paymentTermsDays int
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceAuthorizer sets the craftsman authorizer for the invoice service.
func WithInvoiceAuthorizer(authorizer portssvc.CraftsmanAuthorizerSvc) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.CraftsmanAuthorizer = authorizer
	}
}

// WithDocumentRenderer sets the PDF renderer.
func WithDocumentRenderer(renderer portssvc.DocumentRenderer) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.renderer = renderer
	}
}

// WithInvoiceNotifier sets the service used to e-mail documents.
func WithInvoiceNotifier(notifier portssvc.NotificationSvc) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.notifier = notifier
	}
}

// WithPaymentTerms sets the number of days between issue and due date of new invoices.
func WithPaymentTerms(days int) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.paymentTermsDays = days
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryWithTx,
	appointmentRepo portsrepo.AppointmentRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	craftsmanRepo portsrepo.CraftsmanReader,
	materialRepo portsrepo.MaterialReader,
	options ...InvoiceServiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo:      invoiceRepo,
		appointmentRepo:  appointmentRepo,
		customerRepo:     customerRepo,
		craftsmanRepo:    craftsmanRepo,
		materialRepo:     materialRepo,
		paymentTermsDays: 14,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice creates a draft invoice or quote from the requested items.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	if !req.Type.IsValid() {
		return nil, apperrors.NewValidationFailedError("type must be quote or invoice")
	}
	craftsmanID, err := s.ResolveCraftsman(ctx, creatorUserID, req.CraftsmanID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerOf(ctx, craftsmanID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if req.AppointmentID != nil && *req.AppointmentID != "" {
		appt, err := s.appointmentRepo.FindAppointmentByID(ctx, *req.AppointmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("appointment does not exist")
			}
			return nil, err
		}
		if appt.CraftsmanID != craftsmanID || appt.CustomerID != customer.CustomerID {
			return nil, apperrors.NewValidationFailedError("appointment does not belong to this customer")
		}
	} else {
		req.AppointmentID = nil
	}

	items, err := billing.BuildItems(dto.ToLineInputs(req.Items))
	if err != nil {
		return nil, err
	}
	if err := s.checkItemMaterials(ctx, craftsmanID, items); err != nil {
		return nil, err
	}

	taxRate := req.TaxRate
	if taxRate == nil && req.TaxAmount == nil {
		craftsman, err := s.craftsmanRepo.FindCraftsmanByID(ctx, craftsmanID)
		if err != nil {
			return nil, err
		}
		taxRate = &craftsman.DefaultTaxRate
	}
	if req.TaxAmount != nil {
		taxRate = nil
	}
	amount, tax, total, err := billing.ComputeTotals(items, taxRate, req.TaxAmount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := today(now)
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	inv := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CraftsmanID:   craftsmanID,
		CustomerID:    customer.CustomerID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		AppointmentID: req.AppointmentID,
		Type:          req.Type,
		Status:        domain.InvoiceDraft,
		Amount:        amount,
		TaxRate:       taxRate,
		TaxAmount:     tax,
		TotalAmount:   total,
		IssueDate:     issueDate,
		DueDate:       req.DueDate,
		ServiceDate:   req.ServiceDate,
		Location:      strings.TrimSpace(req.Location),
		Notes:         req.Notes,
		Items:         items,
		AuditFields:   domain.NewAuditFields(creatorUserID, now),
	}
	if inv.DueDate == nil && inv.Type == domain.InvoiceTypeInvoice {
		inv.DueDate = s.dueDate(issueDate)
	}
	if inv.DueDate != nil && inv.DueDate.Before(inv.IssueDate) {
		return nil, apperrors.NewValidationFailedError("due date cannot be before the issue date")
	}

	if err := s.invoiceRepo.CreateInvoice(ctx, &inv); err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	metrics.RecordInvoiceCreated(string(inv.Type), "manual")
	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("type", string(inv.Type)))
	return &inv, nil
}

// CreateInvoiceFromAppointment materializes a pending invoice from a completed appointment.
func (s *invoiceService) CreateInvoiceFromAppointment(ctx context.Context, appointmentID string, creatorUserID string) (*domain.Invoice, error) {
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	appt, err := s.appointmentRepo.FindAppointmentByIDForUpdate(ctx, tx, appointmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock appointment", slog.String("appointment_id", appointmentID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, creatorUserID, appt.CraftsmanID, "appointment"); err != nil {
		return nil, err
	}
	if err := appt.CheckInvoiceable(); err != nil {
		return nil, err
	}

	if existing, err := s.invoiceRepo.FindInvoiceByAppointmentID(ctx, appointmentID); err == nil {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("invoice %s already exists for this appointment", existing.InvoiceNumber))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	items := billing.AppointmentItems(appt)
	if len(items) == 0 {
		return nil, apperrors.NewValidationFailedError("appointment has no service price or materials to invoice")
	}
	zero := decimal.Zero
	amount, tax, total, err := billing.ComputeTotals(items, &zero, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := today(now)
	serviceDate := appt.ScheduledAt
	if appt.CompletedAt != nil {
		serviceDate = *appt.CompletedAt
	}
	apptID := appt.AppointmentID
	inv := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CraftsmanID:   appt.CraftsmanID,
		CustomerID:    appt.CustomerID,
		CustomerName:  appt.CustomerName,
		CustomerEmail: appt.CustomerEmail,
		AppointmentID: &apptID,
		Type:          domain.InvoiceTypeInvoice,
		Status:        domain.InvoicePending,
		Amount:        amount,
		TaxRate:       &zero,
		TaxAmount:     tax,
		TotalAmount:   total,
		IssueDate:     issueDate,
		DueDate:       s.dueDate(issueDate),
		ServiceDate:   &serviceDate,
		Location:      appt.Location,
		Items:         items,
		AuditFields:   domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.invoiceRepo.CreateInvoiceInTx(ctx, tx, &inv); err != nil {
		s.LogError(ctx, err, "Failed to create invoice from appointment", slog.String("appointment_id", appointmentID))
		return nil, err
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.RecordInvoiceCreated(string(inv.Type), "appointment")
	s.LogInfo(ctx, "Invoice created from appointment",
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber),
		slog.String("appointment_id", appointmentID))
	return &inv, nil
}

// GetInvoiceByID retrieves a document with its items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, requestingUserID, inv.CraftsmanID, "invoice"); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvoices lists documents of the resolved craftsman.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams, requestingUserID string) ([]domain.Invoice, error) {
	craftsmanID, err := s.ResolveCraftsman(ctx, requestingUserID, params.CraftsmanID)
	if err != nil {
		return nil, err
	}
	filter := portsrepo.InvoiceListFilter{
		Type:       domain.InvoiceType(params.Type),
		Status:     domain.InvoiceStatus(params.Status),
		CustomerID: params.CustomerID,
		From:       params.From,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.To != nil {
		end := params.To.AddDate(0, 0, 1)
		filter.To = &end
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, craftsmanID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("craftsman_id", craftsmanID))
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// UpdateInvoice edits a draft or pending document and recomputes its totals.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	inv, err := s.lockInvoice(ctx, tx, invoiceID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !inv.IsEditable() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("%s documents cannot be edited", inv.Status))
	}

	if req.Items != nil {
		items, err := billing.BuildItems(dto.ToLineInputs(req.Items))
		if err != nil {
			return nil, err
		}
		if err := s.checkItemMaterials(ctx, inv.CraftsmanID, items); err != nil {
			return nil, err
		}
		inv.Items = items
	}
	switch {
	case req.TaxAmount != nil:
		inv.TaxRate = nil
	case req.TaxRate != nil:
		inv.TaxRate = req.TaxRate
	}
	// Without a stored rate the tax amount was explicit and stays as it is.
	taxAmount := req.TaxAmount
	if taxAmount == nil && inv.TaxRate == nil {
		taxAmount = &inv.TaxAmount
	}
	amount, tax, total, err := billing.ComputeTotals(inv.Items, inv.TaxRate, taxAmount)
	if err != nil {
		return nil, err
	}
	inv.Amount, inv.TaxAmount, inv.TotalAmount = amount, tax, total

	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}
	if req.ServiceDate != nil {
		inv.ServiceDate = req.ServiceDate
	}
	if req.Location != nil {
		inv.Location = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if inv.DueDate != nil && inv.DueDate.Before(inv.IssueDate) {
		return nil, apperrors.NewValidationFailedError("due date cannot be before the issue date")
	}
	inv.Touch(requestingUserID, time.Now().UTC())

	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *inv); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInvoiceStatus moves a document through draft -> pending -> paid, or cancels it.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error) {
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	inv, err := s.lockInvoice(ctx, tx, invoiceID, requestingUserID)
	if err != nil {
		return nil, err
	}
	previous := inv.Status
	if err := inv.TransitionTo(status); err != nil {
		return nil, err
	}
	inv.Touch(requestingUserID, time.Now().UTC())
	if err := s.invoiceRepo.UpdateInvoiceStatusInTx(ctx, tx, invoiceID, inv.Status, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to update invoice status", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Invoice status changed",
		slog.String("invoice_id", invoiceID),
		slog.String("from", string(previous)),
		slog.String("to", string(inv.Status)))
	return inv, nil
}

// DeleteInvoice removes a draft document.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	inv, err := s.GetInvoiceByID(ctx, invoiceID, requestingUserID)
	if err != nil {
		return err
	}
	if inv.Status != domain.InvoiceDraft {
		return apperrors.NewValidationFailedError("only draft documents can be deleted")
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflictError("document is referenced by a converted invoice")
		}
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// ConvertQuote copies a quote into a new draft invoice linked through converted_from_id.
func (s *invoiceService) ConvertQuote(ctx context.Context, quoteID string, requestingUserID string) (*domain.Invoice, error) {
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	quote, err := s.lockInvoice(ctx, tx, quoteID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := quote.CheckConvertible(); err != nil {
		return nil, err
	}
	if existing, err := s.invoiceRepo.FindInvoiceByConvertedFromID(ctx, quoteID); err == nil {
		return nil, apperrors.NewDuplicateError(fmt.Sprintf("quote was already converted to invoice %s", existing.InvoiceNumber))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := today(now)
	items := make([]domain.InvoiceItem, len(quote.Items))
	for i, it := range quote.Items {
		it.ItemID = ""
		it.InvoiceID = ""
		items[i] = it
	}
	fromID := quote.InvoiceID
	inv := domain.Invoice{
		InvoiceID:       uuid.NewString(),
		CraftsmanID:     quote.CraftsmanID,
		CustomerID:      quote.CustomerID,
		CustomerName:    quote.CustomerName,
		CustomerEmail:   quote.CustomerEmail,
		AppointmentID:   quote.AppointmentID,
		ConvertedFromID: &fromID,
		Type:            domain.InvoiceTypeInvoice,
		Status:          domain.InvoiceDraft,
		Amount:          quote.Amount,
		TaxRate:         quote.TaxRate,
		TaxAmount:       quote.TaxAmount,
		TotalAmount:     quote.TotalAmount,
		IssueDate:       issueDate,
		DueDate:         s.dueDate(issueDate),
		ServiceDate:     quote.ServiceDate,
		Location:        quote.Location,
		Notes:           quote.Notes,
		Items:           items,
		AuditFields:     domain.NewAuditFields(requestingUserID, now),
	}

	if err := s.invoiceRepo.CreateInvoiceInTx(ctx, tx, &inv); err != nil {
		s.LogError(ctx, err, "Failed to convert quote", slog.String("quote_id", quoteID))
		return nil, err
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	metrics.RecordInvoiceCreated(string(inv.Type), "conversion")
	s.LogInfo(ctx, "Quote converted",
		slog.String("quote_id", quoteID),
		slog.String("invoice_id", inv.InvoiceID),
		slog.String("invoice_number", inv.InvoiceNumber))
	return &inv, nil
}

// RenderInvoicePDF renders the document with its customer and craftsman.
func (s *invoiceService) RenderInvoicePDF(ctx context.Context, invoiceID string, requestingUserID string) ([]byte, *domain.Invoice, error) {
	inv, err := s.GetInvoiceByID(ctx, invoiceID, requestingUserID)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.loadDocument(ctx, inv)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.render(doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice PDF", slog.String("invoice_id", invoiceID))
		return nil, nil, err
	}
	return pdf, inv, nil
}

// SendInvoice e-mails the document to the customer and moves a draft to pending.
// Delivery problems are logged, not returned.
func (s *invoiceService) SendInvoice(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	inv, err := s.GetInvoiceByID(ctx, invoiceID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if inv.Status == domain.InvoiceCancelled {
		return nil, apperrors.NewValidationFailedError("cancelled documents cannot be sent")
	}
	doc, err := s.loadDocument(ctx, inv)
	if err != nil {
		return nil, err
	}
	if !doc.Customer.HasEmail() {
		return nil, apperrors.NewValidationFailedError("customer has no email address")
	}

	if inv.Status == domain.InvoiceDraft {
		inv, err = s.UpdateInvoiceStatus(ctx, invoiceID, domain.InvoicePending, requestingUserID)
		if err != nil {
			return nil, err
		}
		doc.Invoice = *inv
	}

	if s.notifier != nil {
		pdf, err := s.render(doc)
		if err != nil {
			s.LogError(ctx, err, "Failed to render PDF attachment, sending without it", slog.String("invoice_id", invoiceID))
			pdf = nil
		}
		if err := s.notifier.InvoiceSent(ctx, doc, pdf); err != nil {
			s.LogError(ctx, err, "Failed to e-mail invoice", slog.String("invoice_id", invoiceID))
		}
	}
	s.LogInfo(ctx, "Invoice sent", slog.String("invoice_id", invoiceID))
	return inv, nil
}

func (s *invoiceService) lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID, userID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, userID, inv.CraftsmanID, "invoice"); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) customerOf(ctx context.Context, craftsmanID, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("customer does not exist")
		}
		return nil, err
	}
	if customer.CraftsmanID != craftsmanID {
		return nil, apperrors.NewValidationFailedError("customer does not belong to this craftsman")
	}
	return customer, nil
}

func (s *invoiceService) checkItemMaterials(ctx context.Context, craftsmanID string, items []domain.InvoiceItem) error {
	ids := make([]string, 0)
	for _, it := range items {
		if it.MaterialID != nil && *it.MaterialID != "" {
			ids = append(ids, *it.MaterialID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	found, err := s.materialRepo.FindMaterialsByIDs(ctx, craftsmanID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return apperrors.NewValidationFailedError(fmt.Sprintf("material %s not found", id))
		}
	}
	return nil
}

func (s *invoiceService) loadDocument(ctx context.Context, inv *domain.Invoice) (domain.InvoiceDocument, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, inv.CustomerID)
	if err != nil {
		return domain.InvoiceDocument{}, err
	}
	craftsman, err := s.craftsmanRepo.FindCraftsmanByID(ctx, inv.CraftsmanID)
	if err != nil {
		return domain.InvoiceDocument{}, err
	}
	return domain.InvoiceDocument{Invoice: *inv, Customer: *customer, Craftsman: *craftsman}, nil
}

func (s *invoiceService) render(doc domain.InvoiceDocument) ([]byte, error) {
	if s.renderer == nil {
		return nil, errors.New("no document renderer configured")
	}
	return s.renderer.RenderInvoice(doc)
}

func (s *invoiceService) dueDate(issueDate time.Time) *time.Time {
	due := issueDate.AddDate(0, 0, s.paymentTermsDays)
	return &due
}

// today truncates t to midnight UTC.
func today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
