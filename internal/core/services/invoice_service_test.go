package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo   *MockInvoiceRepository
	apptRepo      *MockAppointmentRepository
	customerRepo  *MockCustomerRepository
	craftsmanRepo *MockCraftsmanRepository
	materialRepo  *MockMaterialRepository
	authorizer    *MockAuthorizer
	renderer      *MockRenderer
	notifier      *MockNotifier
	service       portssvc.InvoiceSvcFacade

	ctx       context.Context
	userID    string
	craftsman domain.Craftsman
	customer  domain.Customer
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.invoiceRepo = new(MockInvoiceRepository)
	suite.apptRepo = new(MockAppointmentRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.craftsmanRepo = new(MockCraftsmanRepository)
	suite.materialRepo = new(MockMaterialRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.renderer = new(MockRenderer)
	suite.notifier = new(MockNotifier)
	suite.service = services.NewInvoiceService(
		suite.invoiceRepo,
		suite.apptRepo,
		suite.customerRepo,
		suite.craftsmanRepo,
		suite.materialRepo,
		services.WithInvoiceAuthorizer(suite.authorizer),
		services.WithDocumentRenderer(suite.renderer),
		services.WithInvoiceNotifier(suite.notifier),
		services.WithPaymentTerms(14),
	)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.craftsman = domain.Craftsman{
		CraftsmanID:    uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Max Tischler",
		Email:          "max@example.com",
		DefaultTaxRate: decimal.NewFromInt(19),
	}
	suite.customer = domain.Customer{
		CustomerID:  uuid.NewString(),
		CraftsmanID: suite.craftsman.CraftsmanID,
		Name:        "Erika Muster",
		Email:       "erika@example.com",
	}
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (suite *InvoiceServiceTestSuite) completedAppointment() domain.Appointment {
	completedAt := time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC)
	return domain.Appointment{
		AppointmentID:  uuid.NewString(),
		CraftsmanID:    suite.craftsman.CraftsmanID,
		CustomerID:     suite.customer.CustomerID,
		CustomerName:   suite.customer.Name,
		CustomerEmail:  suite.customer.Email,
		ScheduledAt:    time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
		ServiceType:    "Floor installation",
		ServicePrice:   decimal.RequireFromString("250.00"),
		Status:         domain.AppointmentCompleted,
		ApprovalStatus: domain.ApprovalApproved,
		CompletedAt:    &completedAt,
		Materials: []domain.AppointmentMaterial{
			{MaterialID: uuid.NewString(), Name: "Parquet", Unit: "m2", Quantity: decimal.NewFromInt(12), UnitPrice: decimal.RequireFromString("24.90")},
		},
	}
}

func (suite *InvoiceServiceTestSuite) assignNumber(number string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		inv := args.Get(len(args) - 1).(*domain.Invoice)
		inv.InvoiceNumber = number
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UsesCraftsmanDefaultTax() {
	req := dto.CreateInvoiceRequest{
		Type:       domain.InvoiceTypeInvoice,
		CustomerID: suite.customer.CustomerID,
		Items: []dto.InvoiceItemInput{
			{Description: "Repair", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("50.00")},
		},
	}
	suite.authorizer.On("ResolveCraftsmanScope", suite.ctx, suite.userID, "").Return(suite.craftsman.CraftsmanID, nil).Once()
	suite.customerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.craftsmanRepo.On("FindCraftsmanByID", suite.ctx, suite.craftsman.CraftsmanID).Return(&suite.craftsman, nil).Once()
	suite.invoiceRepo.On("CreateInvoice", suite.ctx, mock.AnythingOfType("*domain.Invoice")).
		Run(suite.assignNumber("INV-2026-0001")).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("INV-2026-0001", inv.InvoiceNumber)
	suite.Equal(domain.InvoiceDraft, inv.Status)
	suite.True(inv.Amount.Equal(decimal.NewFromInt(100)))
	suite.True(inv.TaxAmount.Equal(decimal.NewFromInt(19)))
	suite.True(inv.TotalAmount.Equal(decimal.NewFromInt(119)))
	suite.Require().NotNil(inv.TaxRate)
	suite.True(inv.TaxRate.Equal(decimal.NewFromInt(19)))
	suite.Require().NotNil(inv.DueDate)
	suite.Equal(inv.IssueDate.AddDate(0, 0, 14), *inv.DueDate)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ExplicitTaxAmount() {
	taxAmount := decimal.RequireFromString("7.50")
	req := dto.CreateInvoiceRequest{
		Type:       domain.InvoiceTypeQuote,
		CustomerID: suite.customer.CustomerID,
		TaxAmount:  &taxAmount,
		Items: []dto.InvoiceItemInput{
			{Description: "Consulting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("80.00")},
		},
	}
	suite.authorizer.On("ResolveCraftsmanScope", suite.ctx, suite.userID, "").Return(suite.craftsman.CraftsmanID, nil).Once()
	suite.customerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.invoiceRepo.On("CreateInvoice", suite.ctx, mock.Anything).Return(nil).Once()

	inv, err := suite.service.CreateInvoice(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(inv.TotalAmount.Equal(decimal.RequireFromString("87.50")))
	suite.Nil(inv.TaxRate)
	suite.Nil(inv.DueDate)
	suite.craftsmanRepo.AssertNotCalled(suite.T(), "FindCraftsmanByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_CustomerOfOtherCraftsman() {
	foreign := suite.customer
	foreign.CraftsmanID = uuid.NewString()
	req := dto.CreateInvoiceRequest{
		Type:       domain.InvoiceTypeInvoice,
		CustomerID: foreign.CustomerID,
		Items:      []dto.InvoiceItemInput{{Description: "x", Quantity: decimal.NewFromInt(1)}},
	}
	suite.authorizer.On("ResolveCraftsmanScope", suite.ctx, suite.userID, "").Return(suite.craftsman.CraftsmanID, nil).Once()
	suite.customerRepo.On("FindCustomerByID", suite.ctx, foreign.CustomerID).Return(&foreign, nil).Once()

	_, err := suite.service.CreateInvoice(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromAppointment_Success() {
	appt := suite.completedAppointment()
	expectTx(&suite.invoiceRepo.Mock, true)
	suite.apptRepo.On("FindAppointmentByIDForUpdate", mock.Anything, mock.Anything, appt.AppointmentID).Return(&appt, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, appt.CraftsmanID).Return(nil).Once()
	suite.invoiceRepo.On("FindInvoiceByAppointmentID", mock.Anything, appt.AppointmentID).Return(nil, apperrors.ErrNotFound).Once()
	suite.invoiceRepo.On("CreateInvoiceInTx", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Run(suite.assignNumber("INV-2026-0042")).Return(nil).Once()

	inv, err := suite.service.CreateInvoiceFromAppointment(suite.ctx, appt.AppointmentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("INV-2026-0042", inv.InvoiceNumber)
	suite.Equal(domain.InvoiceTypeInvoice, inv.Type)
	suite.Equal(domain.InvoicePending, inv.Status)
	suite.Require().Len(inv.Items, 2)
	suite.True(inv.Amount.Equal(decimal.RequireFromString("548.80")))
	suite.True(inv.TaxAmount.IsZero())
	suite.True(inv.TotalAmount.Equal(inv.Amount))
	suite.Require().NotNil(inv.AppointmentID)
	suite.Equal(appt.AppointmentID, *inv.AppointmentID)
	suite.Equal(*appt.CompletedAt, *inv.ServiceDate)
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromAppointment_NotCompleted() {
	appt := suite.completedAppointment()
	appt.Status = domain.AppointmentScheduled
	appt.CompletedAt = nil
	expectTx(&suite.invoiceRepo.Mock, false)
	suite.apptRepo.On("FindAppointmentByIDForUpdate", mock.Anything, mock.Anything, appt.AppointmentID).Return(&appt, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, appt.CraftsmanID).Return(nil).Once()

	_, err := suite.service.CreateInvoiceFromAppointment(suite.ctx, appt.AppointmentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "CreateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromAppointment_AlreadyInvoiced() {
	appt := suite.completedAppointment()
	expectTx(&suite.invoiceRepo.Mock, false)
	suite.apptRepo.On("FindAppointmentByIDForUpdate", mock.Anything, mock.Anything, appt.AppointmentID).Return(&appt, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, appt.CraftsmanID).Return(nil).Once()
	suite.invoiceRepo.On("FindInvoiceByAppointmentID", mock.Anything, appt.AppointmentID).
		Return(&domain.Invoice{InvoiceNumber: "INV-2026-0001"}, nil).Once()

	_, err := suite.service.CreateInvoiceFromAppointment(suite.ctx, appt.AppointmentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_Transitions() {
	cases := []struct {
		from    domain.InvoiceStatus
		to      domain.InvoiceStatus
		wantErr bool
	}{
		{domain.InvoiceDraft, domain.InvoicePending, false},
		{domain.InvoicePending, domain.InvoicePaid, false},
		{domain.InvoicePending, domain.InvoiceCancelled, false},
		{domain.InvoiceDraft, domain.InvoicePaid, true},
		{domain.InvoicePaid, domain.InvoiceCancelled, true},
		{domain.InvoiceCancelled, domain.InvoicePending, true},
	}
	for _, tc := range cases {
		suite.Run(string(tc.from)+"->"+string(tc.to), func() {
			suite.SetupTest()
			inv := domain.Invoice{InvoiceID: uuid.NewString(), CraftsmanID: suite.craftsman.CraftsmanID, Status: tc.from}
			expectTx(&suite.invoiceRepo.Mock, !tc.wantErr)
			suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()
			suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Once()
			if !tc.wantErr {
				suite.invoiceRepo.On("UpdateInvoiceStatusInTx", mock.Anything, mock.Anything, inv.InvoiceID, tc.to, suite.userID).Return(nil).Once()
			}

			updated, err := suite.service.UpdateInvoiceStatus(suite.ctx, inv.InvoiceID, tc.to, suite.userID)

			if tc.wantErr {
				suite.ErrorIs(err, apperrors.ErrValidation)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(tc.to, updated.Status)
		})
	}
}

func (suite *InvoiceServiceTestSuite) draftAtDefaultRate() domain.Invoice {
	rate := decimal.NewFromInt(19)
	return domain.Invoice{
		InvoiceID:   uuid.NewString(),
		CraftsmanID: suite.craftsman.CraftsmanID,
		CustomerID:  suite.customer.CustomerID,
		Type:        domain.InvoiceTypeInvoice,
		Status:      domain.InvoiceDraft,
		Amount:      decimal.NewFromInt(100),
		TaxRate:     &rate,
		TaxAmount:   decimal.NewFromInt(19),
		TotalAmount: decimal.NewFromInt(119),
		IssueDate:   time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		Items: []domain.InvoiceItem{
			{ItemID: uuid.NewString(), Position: 1, Description: "Repair", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(100)},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ReplacesItemsAndRecomputesTax() {
	inv := suite.draftAtDefaultRate()
	req := dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemInput{
			{Description: "Repair", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
			{Description: "Travel", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}
	expectTx(&suite.invoiceRepo.Mock, true)
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Once()
	suite.invoiceRepo.On("UpdateInvoiceInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(saved domain.Invoice) bool {
		return len(saved.Items) == 2 && saved.TaxAmount.Equal(decimal.NewFromInt(38))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(suite.ctx, inv.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Items, 2)
	suite.Equal("Travel", updated.Items[1].Description)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(200)))
	suite.True(updated.TaxAmount.Equal(decimal.NewFromInt(38)))
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(238)))
	suite.Require().NotNil(updated.TaxRate)
	suite.True(updated.TaxRate.Equal(decimal.NewFromInt(19)))
	suite.invoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_TaxSources() {
	explicit := decimal.RequireFromString("5.00")
	newRate := decimal.NewFromInt(7)
	doubled := []dto.InvoiceItemInput{{Description: "Repair", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(50)}}
	cases := []struct {
		name     string
		stored   *decimal.Decimal
		req      dto.UpdateInvoiceRequest
		wantTax  string
		wantRate *decimal.Decimal
	}{
		{"explicit amount drops the rate", &newRate, dto.UpdateInvoiceRequest{Items: doubled, TaxAmount: &explicit}, "5", nil},
		{"new rate replaces the stored one", nil, dto.UpdateInvoiceRequest{Items: doubled, TaxRate: &newRate}, "14", &newRate},
		{"stored explicit amount is kept", nil, dto.UpdateInvoiceRequest{Items: doubled}, "19", nil},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			inv := suite.draftAtDefaultRate()
			inv.TaxRate = tc.stored
			expectTx(&suite.invoiceRepo.Mock, true)
			suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()
			suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Once()
			suite.invoiceRepo.On("UpdateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

			updated, err := suite.service.UpdateInvoice(suite.ctx, inv.InvoiceID, tc.req, suite.userID)

			suite.Require().NoError(err)
			suite.True(updated.Amount.Equal(decimal.NewFromInt(200)))
			suite.True(updated.TaxAmount.Equal(decimal.RequireFromString(tc.wantTax)), updated.TaxAmount.String())
			if tc.wantRate == nil {
				suite.Nil(updated.TaxRate)
			} else {
				suite.Require().NotNil(updated.TaxRate)
				suite.True(updated.TaxRate.Equal(*tc.wantRate))
			}
		})
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_OnlyDraftOrPending() {
	for _, status := range []domain.InvoiceStatus{domain.InvoicePaid, domain.InvoiceCancelled} {
		suite.Run(string(status), func() {
			suite.SetupTest()
			inv := suite.draftAtDefaultRate()
			inv.Status = status
			notes := "late edit"
			expectTx(&suite.invoiceRepo.Mock, false)
			suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()
			suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Once()

			_, err := suite.service.UpdateInvoice(suite.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{Notes: &notes}, suite.userID)

			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.invoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_DueDateBeforeIssueDate() {
	inv := suite.draftAtDefaultRate()
	due := inv.IssueDate.AddDate(0, 0, -1)
	expectTx(&suite.invoiceRepo.Mock, false)
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Once()

	_, err := suite.service.UpdateInvoice(suite.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{DueDate: &due}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestConvertQuote_CreatesLinkedDraft() {
	quote := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "QUO-2026-0003",
		CraftsmanID:   suite.craftsman.CraftsmanID,
		CustomerID:    suite.customer.CustomerID,
		Type:          domain.InvoiceTypeQuote,
		Status:        domain.InvoicePending,
		Amount:        decimal.NewFromInt(100),
		TaxAmount:     decimal.NewFromInt(19),
		TotalAmount:   decimal.NewFromInt(119),
		Items: []domain.InvoiceItem{
			{ItemID: uuid.NewString(), Position: 1, Description: "Work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), LineTotal: decimal.NewFromInt(100)},
		},
	}
	expectTx(&suite.invoiceRepo.Mock, true)
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, quote.InvoiceID).Return(&quote, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, quote.CraftsmanID).Return(nil).Once()
	suite.invoiceRepo.On("FindInvoiceByConvertedFromID", mock.Anything, quote.InvoiceID).Return(nil, apperrors.ErrNotFound).Once()
	suite.invoiceRepo.On("CreateInvoiceInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(suite.assignNumber("INV-2026-0010")).Return(nil).Once()

	inv, err := suite.service.ConvertQuote(suite.ctx, quote.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceTypeInvoice, inv.Type)
	suite.Equal(domain.InvoiceDraft, inv.Status)
	suite.Equal("INV-2026-0010", inv.InvoiceNumber)
	suite.Require().NotNil(inv.ConvertedFromID)
	suite.Equal(quote.InvoiceID, *inv.ConvertedFromID)
	suite.True(inv.TotalAmount.Equal(quote.TotalAmount))
	suite.Require().Len(inv.Items, 1)
	suite.Empty(inv.Items[0].ItemID)
	suite.NotEmpty(quote.Items[0].ItemID)
	suite.Equal(domain.InvoicePending, quote.Status)
}

func (suite *InvoiceServiceTestSuite) TestConvertQuote_RejectsInvoice() {
	inv := domain.Invoice{InvoiceID: uuid.NewString(), CraftsmanID: suite.craftsman.CraftsmanID, Type: domain.InvoiceTypeInvoice, Status: domain.InvoiceDraft}
	expectTx(&suite.invoiceRepo.Mock, false)
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Once()

	_, err := suite.service.ConvertQuote(suite.ctx, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_OnlyDrafts() {
	inv := domain.Invoice{InvoiceID: uuid.NewString(), CraftsmanID: suite.craftsman.CraftsmanID, Status: domain.InvoicePaid}
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", suite.ctx, suite.userID, inv.CraftsmanID).Return(nil).Once()

	err := suite.service.DeleteInvoice(suite.ctx, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.invoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_ForeignHiddenAsNotFound() {
	inv := domain.Invoice{InvoiceID: uuid.NewString(), CraftsmanID: uuid.NewString()}
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", suite.ctx, suite.userID, inv.CraftsmanID).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.GetInvoiceByID(suite.ctx, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestRenderInvoicePDF() {
	inv := domain.Invoice{InvoiceID: uuid.NewString(), CraftsmanID: suite.craftsman.CraftsmanID, CustomerID: suite.customer.CustomerID}
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", suite.ctx, suite.userID, inv.CraftsmanID).Return(nil).Once()
	suite.customerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.craftsmanRepo.On("FindCraftsmanByID", suite.ctx, suite.craftsman.CraftsmanID).Return(&suite.craftsman, nil).Once()
	suite.renderer.On("RenderInvoice", mock.AnythingOfType("domain.InvoiceDocument")).Return([]byte("%PDF-1.3"), nil).Once()

	pdf, got, err := suite.service.RenderInvoicePDF(suite.ctx, inv.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal([]byte("%PDF-1.3"), pdf)
	suite.Equal(inv.InvoiceID, got.InvoiceID)
}

func (suite *InvoiceServiceTestSuite) TestSendInvoice_DraftBecomesPendingAndMailFailureIsLogged() {
	inv := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-2026-0005",
		CraftsmanID:   suite.craftsman.CraftsmanID,
		CustomerID:    suite.customer.CustomerID,
		Type:          domain.InvoiceTypeInvoice,
		Status:        domain.InvoiceDraft,
	}
	locked := inv
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", mock.Anything, suite.userID, inv.CraftsmanID).Return(nil).Twice()
	suite.customerRepo.On("FindCustomerByID", suite.ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.craftsmanRepo.On("FindCraftsmanByID", suite.ctx, suite.craftsman.CraftsmanID).Return(&suite.craftsman, nil).Once()
	expectTx(&suite.invoiceRepo.Mock, true)
	suite.invoiceRepo.On("FindInvoiceByIDForUpdate", mock.Anything, mock.Anything, inv.InvoiceID).Return(&locked, nil).Once()
	suite.invoiceRepo.On("UpdateInvoiceStatusInTx", mock.Anything, mock.Anything, inv.InvoiceID, domain.InvoicePending, suite.userID).Return(nil).Once()
	suite.renderer.On("RenderInvoice", mock.Anything).Return([]byte("%PDF"), nil).Once()
	suite.notifier.On("InvoiceSent", mock.Anything, mock.Anything, []byte("%PDF")).Return(assert.AnError).Once()

	sent, err := suite.service.SendInvoice(suite.ctx, inv.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePending, sent.Status)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestSendInvoice_CustomerWithoutEmail() {
	noMail := suite.customer
	noMail.Email = ""
	inv := domain.Invoice{InvoiceID: uuid.NewString(), CraftsmanID: suite.craftsman.CraftsmanID, CustomerID: noMail.CustomerID, Status: domain.InvoicePending}
	suite.invoiceRepo.On("FindInvoiceByID", suite.ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.authorizer.On("AuthorizeCraftsmanAccess", suite.ctx, suite.userID, inv.CraftsmanID).Return(nil).Once()
	suite.customerRepo.On("FindCustomerByID", suite.ctx, noMail.CustomerID).Return(&noMail, nil).Once()
	suite.craftsmanRepo.On("FindCraftsmanByID", suite.ctx, suite.craftsman.CraftsmanID).Return(&suite.craftsman, nil).Once()

	_, err := suite.service.SendInvoice(suite.ctx, inv.InvoiceID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.notifier.AssertNotCalled(suite.T(), "InvoiceSent", mock.Anything, mock.Anything, mock.Anything)
}
