package services_test

import (
	"testing"

	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/SscSPs/zimmr_backend/internal/core/services"
	"github.com/SscSPs/zimmr_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
)

func TestNewServiceContainer_WiresEveryService(t *testing.T) {
	repos := portsrepo.RepositoryProvider{
		UserRepository:          new(MockUserRepository),
		CraftsmanRepository:     new(MockCraftsmanRepository),
		CustomerRepository:      new(MockCustomerRepository),
		CustomerSpaceRepository: new(MockCustomerSpaceRepository),
		MaterialRepository:      new(MockMaterialRepository),
		AppointmentRepository:   new(MockAppointmentRepository),
		InvoiceRepository:       new(MockInvoiceRepository),
		TimeEntryRepository:     new(MockTimeEntryRepository),
		ReportingRepository:     new(MockReportingRepository),
	}
	cfg := &config.Config{FrontendBaseURL: "https://app.zimmr.local", DefaultPaymentTermsDays: 14}

	c := services.NewServiceContainer(cfg, repos, new(MockMailer), new(MockRenderer))

	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.Token)
	assert.NotNil(t, c.Craftsman)
	assert.NotNil(t, c.Customer)
	assert.NotNil(t, c.CustomerSpace)
	assert.NotNil(t, c.Material)
	assert.NotNil(t, c.Appointment)
	assert.NotNil(t, c.Invoice)
	assert.NotNil(t, c.TimeEntry)
	assert.NotNil(t, c.Reporting)
	assert.NotNil(t, c.Notification)
	assert.NotNil(t, c.Reminder)
}
