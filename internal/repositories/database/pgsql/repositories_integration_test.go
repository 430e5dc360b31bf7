//go:build integration

package pgsql

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/zimmr_backend/internal/apperrors"
	"github.com/SscSPs/zimmr_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/zimmr_backend/internal/platform/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider

	user      domain.User
	craftsman domain.Craftsman
	customer  domain.Customer
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	ctr, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("zimmr"),
		tcpostgres.WithUsername("zimmr"),
		tcpostgres.WithPassword("zimmr"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = ctr

	dsn, err := ctr.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.RunMigrations(dsn, "file://../../../../migrations", logger))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, true)
	s.Require().NoError(err)
	s.repos = NewRepositoryProvider(s.pool)

	s.seed()
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(testcontainers.TerminateContainer(s.container))
	}
}

func (s *RepositoryIntegrationSuite) seed() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	s.user = domain.User{
		UserID:       uuid.NewString(),
		Email:        "max@example.com",
		Name:         "Max Meister",
		PasswordHash: "hash",
		Role:         domain.RoleCraftsman,
	}
	s.user.AuditFields = domain.NewAuditFields(s.user.UserID, now)
	s.craftsman = domain.Craftsman{
		CraftsmanID:    uuid.NewString(),
		UserID:         s.user.UserID,
		Name:           "Meister Bau",
		DefaultTaxRate: decimal.NewFromInt(19),
		AuditFields:    domain.NewAuditFields(s.user.UserID, now),
	}

	tx, err := s.repos.UserRepository.Begin(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.repos.UserRepository.SaveUserInTx(s.ctx, tx, s.user))
	s.Require().NoError(s.repos.CraftsmanRepository.SaveCraftsmanInTx(s.ctx, tx, s.craftsman))
	s.Require().NoError(s.repos.UserRepository.Commit(s.ctx, tx))

	s.customer = domain.Customer{
		CustomerID:  uuid.NewString(),
		CraftsmanID: s.craftsman.CraftsmanID,
		Name:        "Erika Musterfrau",
		Email:       "erika@example.com",
		Address:     "Hauptstr. 1",
		AuditFields: domain.NewAuditFields(s.user.UserID, now),
	}
	s.Require().NoError(s.repos.CustomerRepository.SaveCustomer(s.ctx, s.customer))
}

func (s *RepositoryIntegrationSuite) TestUserLookupIsCaseInsensitive() {
	user, err := s.repos.UserRepository.FindUserByEmail(s.ctx, "MAX@example.com")
	s.Require().NoError(err)
	s.Equal(s.user.UserID, user.UserID)

	craftsman, err := s.repos.CraftsmanRepository.FindCraftsmanByUserID(s.ctx, s.user.UserID)
	s.Require().NoError(err)
	s.Equal("max@example.com", craftsman.Email)
	s.True(craftsman.DefaultTaxRate.Equal(decimal.NewFromInt(19)))
}

func (s *RepositoryIntegrationSuite) TestInvoiceNumbersAreSequentialPerTypeAndYear() {
	issue := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	rate := decimal.NewFromInt(19)
	newDoc := func(t domain.InvoiceType) *domain.Invoice {
		return &domain.Invoice{
			InvoiceID:   uuid.NewString(),
			CraftsmanID: s.craftsman.CraftsmanID,
			CustomerID:  s.customer.CustomerID,
			Type:        t,
			Status:      domain.InvoiceDraft,
			Amount:      decimal.NewFromInt(100),
			TaxRate:     &rate,
			TaxAmount:   decimal.NewFromInt(19),
			TotalAmount: decimal.NewFromInt(119),
			IssueDate:   issue,
			Items: []domain.InvoiceItem{{
				Position:    1,
				Description: "Fliesen legen",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(100),
				LineTotal:   decimal.NewFromInt(100),
			}},
			AuditFields: domain.NewAuditFields(s.user.UserID, time.Now().UTC()),
		}
	}

	first := newDoc(domain.InvoiceTypeInvoice)
	s.Require().NoError(s.repos.InvoiceRepository.CreateInvoice(s.ctx, first))
	second := newDoc(domain.InvoiceTypeInvoice)
	s.Require().NoError(s.repos.InvoiceRepository.CreateInvoice(s.ctx, second))
	quote := newDoc(domain.InvoiceTypeQuote)
	s.Require().NoError(s.repos.InvoiceRepository.CreateInvoice(s.ctx, quote))

	s.Equal("INV-2026-0001", first.InvoiceNumber)
	s.Equal("INV-2026-0002", second.InvoiceNumber)
	s.Equal("QUO-2026-0001", quote.InvoiceNumber)

	loaded, err := s.repos.InvoiceRepository.FindInvoiceByID(s.ctx, first.InvoiceID)
	s.Require().NoError(err)
	s.Equal(s.customer.Name, loaded.CustomerName)
	s.Require().Len(loaded.Items, 1)
	s.NotEmpty(loaded.Items[0].ItemID)
	s.True(loaded.TotalAmount.Equal(decimal.NewFromInt(119)))
	s.Require().NotNil(loaded.TaxRate)
	s.True(loaded.TaxRate.Equal(rate))

	forCustomer, err := s.repos.InvoiceRepository.ListInvoicesForCustomer(s.ctx, s.customer.CustomerID)
	s.Require().NoError(err)
	s.Empty(forCustomer, "drafts are not visible to customers")
}

func (s *RepositoryIntegrationSuite) TestAppointmentWithMaterialsAndReminderQuery() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	material := domain.Material{
		MaterialID:    uuid.NewString(),
		CraftsmanID:   s.craftsman.CraftsmanID,
		Name:          "Silikon",
		Unit:          "piece",
		UnitPrice:     decimal.RequireFromString("7.90"),
		StockQuantity: decimal.NewFromInt(10),
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(s.user.UserID, now),
	}
	s.Require().NoError(s.repos.MaterialRepository.SaveMaterial(s.ctx, material))

	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	appt := domain.Appointment{
		AppointmentID:   uuid.NewString(),
		CraftsmanID:     s.craftsman.CraftsmanID,
		CustomerID:      s.customer.CustomerID,
		ScheduledAt:     tomorrow,
		DurationMinutes: 90,
		ServicePrice:    decimal.NewFromInt(150),
		Status:          domain.AppointmentScheduled,
		ApprovalStatus:  domain.ApprovalApproved,
		Materials: []domain.AppointmentMaterial{{
			MaterialID: material.MaterialID,
			Quantity:   decimal.NewFromInt(2),
			UnitPrice:  material.UnitPrice,
		}},
		AuditFields: domain.NewAuditFields(s.user.UserID, now),
	}
	s.Require().NoError(s.repos.AppointmentRepository.SaveAppointment(s.ctx, appt))

	loaded, err := s.repos.AppointmentRepository.FindAppointmentByID(s.ctx, appt.AppointmentID)
	s.Require().NoError(err)
	s.Equal("erika@example.com", loaded.CustomerEmail)
	s.Require().Len(loaded.Materials, 1)
	s.Equal("Silikon", loaded.Materials[0].Name)
	s.True(loaded.Total().Equal(decimal.RequireFromString("165.80")))

	from := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	due, err := s.repos.AppointmentRepository.ListDueReminders(s.ctx, from, from.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Require().Len(due, 1)

	s.Require().NoError(s.repos.AppointmentRepository.MarkReminderSent(s.ctx, appt.AppointmentID, now))
	due, err = s.repos.AppointmentRepository.ListDueReminders(s.ctx, from, from.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Empty(due)

	err = s.repos.CustomerRepository.DeleteCustomer(s.ctx, s.customer.CustomerID)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *RepositoryIntegrationSuite) TestTimeEntryKeysetPagination() {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		end := start.Add(30 * time.Minute)
		minutes := 30
		entry := domain.TimeEntry{
			TimeEntryID:     uuid.NewString(),
			CraftsmanID:     s.craftsman.CraftsmanID,
			StartTime:       start,
			EndTime:         &end,
			DurationMinutes: &minutes,
			IsBillable:      true,
			AuditFields:     domain.NewAuditFields(s.user.UserID, time.Now().UTC()),
		}
		s.Require().NoError(s.repos.TimeEntryRepository.SaveTimeEntry(s.ctx, entry))
	}

	page, err := s.repos.TimeEntryRepository.ListTimeEntries(s.ctx, s.craftsman.CraftsmanID, portsrepo.TimeEntryListFilter{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.True(page[0].StartTime.After(page[1].StartTime))

	last := page[1]
	rest, err := s.repos.TimeEntryRepository.ListTimeEntries(s.ctx, s.craftsman.CraftsmanID, portsrepo.TimeEntryListFilter{
		Limit:      2,
		AfterStart: &last.StartTime,
		AfterID:    last.TimeEntryID,
	})
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(base, rest[0].StartTime.UTC())

	_, err = s.repos.TimeEntryRepository.FindRunningTimeEntry(s.ctx, s.craftsman.CraftsmanID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
