package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Transactions ---

// mockTx embeds the transaction methods shared by all *WithTx repositories.
// Begin returns a nil pgx.Tx; the repositories under test never touch it.
type mockTx struct {
	mock.Mock
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTx) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx sets up a transaction that is rolled back after an optional commit.
func expectTx(m *mock.Mock, commit bool) {
	m.On("Begin", mock.Anything).Return(nil, nil).Once()
	if commit {
		m.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	}
	m.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mockTx
}

var _ portsrepo.UserRepositoryWithTx = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock CraftsmanRepository ---
type MockCraftsmanRepository struct {
	mock.Mock
}

var _ portsrepo.CraftsmanRepositoryFacade = (*MockCraftsmanRepository)(nil)

func (m *MockCraftsmanRepository) FindCraftsmanByID(ctx context.Context, craftsmanID string) (*domain.Craftsman, error) {
	args := m.Called(ctx, craftsmanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Craftsman), args.Error(1)
}

func (m *MockCraftsmanRepository) FindCraftsmanByUserID(ctx context.Context, userID string) (*domain.Craftsman, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Craftsman), args.Error(1)
}

func (m *MockCraftsmanRepository) SaveCraftsmanInTx(ctx context.Context, tx pgx.Tx, craftsman domain.Craftsman) error {
	args := m.Called(ctx, tx, craftsman)
	return args.Error(0)
}

func (m *MockCraftsmanRepository) UpdateCraftsman(ctx context.Context, craftsman domain.Craftsman) error {
	args := m.Called(ctx, craftsman)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, craftsmanID string, filter portsrepo.CustomerListFilter) ([]domain.Customer, error) {
	args := m.Called(ctx, craftsmanID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Mock CustomerSpaceRepository ---
type MockCustomerSpaceRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerSpaceRepositoryFacade = (*MockCustomerSpaceRepository)(nil)

func (m *MockCustomerSpaceRepository) FindSpaceByCustomerID(ctx context.Context, customerID string) (*domain.CustomerSpace, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerSpace), args.Error(1)
}

func (m *MockCustomerSpaceRepository) FindSpaceByTokenHash(ctx context.Context, tokenHash string) (*domain.CustomerSpace, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerSpace), args.Error(1)
}

func (m *MockCustomerSpaceRepository) UpsertSpace(ctx context.Context, space domain.CustomerSpace) error {
	args := m.Called(ctx, space)
	return args.Error(0)
}

func (m *MockCustomerSpaceRepository) DeactivateSpace(ctx context.Context, customerID string, userID string) error {
	args := m.Called(ctx, customerID, userID)
	return args.Error(0)
}

// --- Mock MaterialRepository ---
type MockMaterialRepository struct {
	mock.Mock
}

var _ portsrepo.MaterialRepositoryFacade = (*MockMaterialRepository)(nil)

func (m *MockMaterialRepository) FindMaterialByID(ctx context.Context, materialID string) (*domain.Material, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindMaterialsByIDs(ctx context.Context, craftsmanID string, materialIDs []string) (map[string]domain.Material, error) {
	args := m.Called(ctx, craftsmanID, materialIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Material), args.Error(1)
}

func (m *MockMaterialRepository) ListMaterials(ctx context.Context, craftsmanID string, filter portsrepo.MaterialListFilter) ([]domain.Material, error) {
	args := m.Called(ctx, craftsmanID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Material), args.Error(1)
}

func (m *MockMaterialRepository) SaveMaterial(ctx context.Context, material domain.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) UpdateMaterial(ctx context.Context, material domain.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) DeactivateMaterial(ctx context.Context, materialID string, userID string) error {
	args := m.Called(ctx, materialID, userID)
	return args.Error(0)
}

// --- Mock AppointmentRepository ---
type MockAppointmentRepository struct {
	mockTx
}

var _ portsrepo.AppointmentRepositoryWithTx = (*MockAppointmentRepository)(nil)

func (m *MockAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListAppointments(ctx context.Context, craftsmanID string, filter portsrepo.AppointmentListFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, craftsmanID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListAppointmentsForCustomer(ctx context.Context, customerID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListDueReminders(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindAppointmentByIDForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, tx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateAppointmentInTx(ctx context.Context, tx pgx.Tx, appointment domain.Appointment) error {
	args := m.Called(ctx, tx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) ReplaceAppointmentMaterialsInTx(ctx context.Context, tx pgx.Tx, appointmentID string, materials []domain.AppointmentMaterial) error {
	args := m.Called(ctx, tx, appointmentID, materials)
	return args.Error(0)
}

func (m *MockAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID string, sentAt time.Time) error {
	args := m.Called(ctx, appointmentID, sentAt)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mockTx
}

var _ portsrepo.InvoiceRepositoryWithTx = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByAppointmentID(ctx context.Context, appointmentID string) (*domain.Invoice, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByConvertedFromID(ctx context.Context, quoteID string) (*domain.Invoice, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, craftsmanID string, filter portsrepo.InvoiceListFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, craftsmanID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesForCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, tx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, userID string) error {
	args := m.Called(ctx, tx, invoiceID, status, userID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock TimeEntryRepository ---
type MockTimeEntryRepository struct {
	mock.Mock
}

var _ portsrepo.TimeEntryRepositoryFacade = (*MockTimeEntryRepository)(nil)

func (m *MockTimeEntryRepository) FindTimeEntryByID(ctx context.Context, timeEntryID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, timeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindRunningTimeEntry(ctx context.Context, craftsmanID string) (*domain.TimeEntry, error) {
	args := m.Called(ctx, craftsmanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) ListTimeEntries(ctx context.Context, craftsmanID string, filter portsrepo.TimeEntryListFilter) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, craftsmanID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) DeleteTimeEntry(ctx context.Context, timeEntryID string) error {
	args := m.Called(ctx, timeEntryID)
	return args.Error(0)
}

// --- Mock services ---

type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.CraftsmanAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeCraftsmanAccess(ctx context.Context, userID, craftsmanID string) error {
	args := m.Called(ctx, userID, craftsmanID)
	return args.Error(0)
}

func (m *MockAuthorizer) ResolveCraftsmanScope(ctx context.Context, userID, requestedCraftsmanID string) (string, error) {
	args := m.Called(ctx, userID, requestedCraftsmanID)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.NotificationSvc = (*MockNotifier)(nil)

func (m *MockNotifier) AppointmentApproved(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman) error {
	args := m.Called(ctx, appt, craftsman)
	return args.Error(0)
}

func (m *MockNotifier) AppointmentRejected(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman, reason string) error {
	args := m.Called(ctx, appt, craftsman, reason)
	return args.Error(0)
}

func (m *MockNotifier) AppointmentRequested(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman, customer *domain.Customer) error {
	args := m.Called(ctx, appt, craftsman, customer)
	return args.Error(0)
}

func (m *MockNotifier) AppointmentReminder(ctx context.Context, appt *domain.Appointment, craftsman *domain.Craftsman) error {
	args := m.Called(ctx, appt, craftsman)
	return args.Error(0)
}

func (m *MockNotifier) InvoiceSent(ctx context.Context, doc domain.InvoiceDocument, pdf []byte) error {
	args := m.Called(ctx, doc, pdf)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

var _ portssvc.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockRenderer struct {
	mock.Mock
}

var _ portssvc.DocumentRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) RenderInvoice(doc domain.InvoiceDocument) ([]byte, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
