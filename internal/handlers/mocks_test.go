package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, *domain.Craftsman, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	craftsman, _ := args.Get(1).(*domain.Craftsman)
	return args.Get(0).(*domain.User), craftsman, args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthSession), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.AuthSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthSession), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*domain.User, *domain.Craftsman, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	craftsman, _ := args.Get(1).(*domain.Craftsman)
	return args.Get(0).(*domain.User), craftsman, args.Error(2)
}

// --- Mock AppointmentService ---
type MockAppointmentService struct {
	mock.Mock
}

var _ portssvc.AppointmentSvcFacade = (*MockAppointmentService)(nil)

func (m *MockAppointmentService) appointment(args mock.Arguments) (*domain.Appointment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) GetAppointmentByID(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, appointmentID, requestingUserID))
}

func (m *MockAppointmentService) ListAppointments(ctx context.Context, params dto.ListAppointmentsParams, requestingUserID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) CreateAppointment(ctx context.Context, req dto.CreateAppointmentRequest, creatorUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, req, creatorUserID))
}

func (m *MockAppointmentService) UpdateAppointment(ctx context.Context, appointmentID string, req dto.UpdateAppointmentRequest, requestingUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, appointmentID, req, requestingUserID))
}

func (m *MockAppointmentService) DeleteAppointment(ctx context.Context, appointmentID string, requestingUserID string) error {
	return m.Called(ctx, appointmentID, requestingUserID).Error(0)
}

func (m *MockAppointmentService) ApproveAppointment(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, appointmentID, requestingUserID))
}

func (m *MockAppointmentService) RejectAppointment(ctx context.Context, appointmentID string, reason string, requestingUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, appointmentID, reason, requestingUserID))
}

func (m *MockAppointmentService) CompleteAppointment(ctx context.Context, appointmentID string, req dto.CompleteAppointmentRequest, requestingUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, appointmentID, req, requestingUserID))
}

func (m *MockAppointmentService) CancelAppointment(ctx context.Context, appointmentID string, requestingUserID string) (*domain.Appointment, error) {
	return m.appointment(m.Called(ctx, appointmentID, requestingUserID))
}

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, requestingUserID))
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams, requestingUserID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, params, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, req, creatorUserID))
}

func (m *MockInvoiceService) CreateInvoiceFromAppointment(ctx context.Context, appointmentID string, creatorUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, appointmentID, creatorUserID))
}

func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, requestingUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, req, requestingUserID))
}

func (m *MockInvoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, requestingUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, status, requestingUserID))
}

func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, invoiceID string, requestingUserID string) error {
	return m.Called(ctx, invoiceID, requestingUserID).Error(0)
}

func (m *MockInvoiceService) ConvertQuote(ctx context.Context, quoteID string, requestingUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, quoteID, requestingUserID))
}

func (m *MockInvoiceService) RenderInvoicePDF(ctx context.Context, invoiceID string, requestingUserID string) ([]byte, *domain.Invoice, error) {
	args := m.Called(ctx, invoiceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*domain.Invoice), args.Error(2)
}

func (m *MockInvoiceService) SendInvoice(ctx context.Context, invoiceID string, requestingUserID string) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, invoiceID, requestingUserID))
}

// --- Mock CustomerSpaceService ---
type MockCustomerSpaceService struct {
	mock.Mock
}

var _ portssvc.CustomerSpaceSvcFacade = (*MockCustomerSpaceService)(nil)

func (m *MockCustomerSpaceService) CreateOrRotateSpace(ctx context.Context, customerID string, req dto.CreateCustomerSpaceRequest, requestingUserID string) (*dto.CustomerSpaceGrant, error) {
	args := m.Called(ctx, customerID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerSpaceGrant), args.Error(1)
}

func (m *MockCustomerSpaceService) GetSpace(ctx context.Context, customerID string, requestingUserID string) (*domain.CustomerSpace, error) {
	args := m.Called(ctx, customerID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerSpace), args.Error(1)
}

func (m *MockCustomerSpaceService) DeactivateSpace(ctx context.Context, customerID string, requestingUserID string) error {
	return m.Called(ctx, customerID, requestingUserID).Error(0)
}

func (m *MockCustomerSpaceService) GetPortal(ctx context.Context, accessToken string) (*domain.CustomerPortal, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPortal), args.Error(1)
}

func (m *MockCustomerSpaceService) RequestAppointment(ctx context.Context, accessToken string, req dto.PublicAppointmentRequest) (*domain.Appointment, error) {
	args := m.Called(ctx, accessToken, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

func (m *MockReportingService) GetBusinessSummary(ctx context.Context, requestedCraftsmanID string, from, to time.Time, requestingUserID string) (*domain.BusinessSummary, error) {
	args := m.Called(ctx, requestedCraftsmanID, from, to, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessSummary), args.Error(1)
}
