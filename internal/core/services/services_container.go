package services

import (
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/zimmr_backend/internal/core/ports/services"
	"github.com/SscSPs/zimmr_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer portssvc.Mailer, renderer portssvc.DocumentRenderer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The craftsman service is also the authorizer every other service depends on
	container.Craftsman = NewCraftsmanService(repos.CraftsmanRepository, repos.UserRepository)
	authorizer := container.Craftsman.(portssvc.CraftsmanAuthorizerSvc)

	container.Notification = NewNotificationService(mailer)

	container.Token = NewTokenService(cfg, repos.UserRepository)
	container.Auth = NewAuthService(repos.UserRepository, repos.CraftsmanRepository, container.Token)

	container.Customer = NewCustomerService(
		repos.CustomerRepository,
		WithCustomerAuthorizer(authorizer),
	)
	container.CustomerSpace = NewCustomerSpaceService(
		repos.CustomerSpaceRepository,
		repos.CustomerRepository,
		repos.CraftsmanRepository,
		repos.AppointmentRepository,
		repos.InvoiceRepository,
		WithSpaceAuthorizer(authorizer),
		WithSpaceNotifier(container.Notification),
		WithPortalBaseURL(cfg.FrontendBaseURL),
	)
	container.Material = NewMaterialService(repos.MaterialRepository, authorizer)
	container.Appointment = NewAppointmentService(
		repos.AppointmentRepository,
		repos.CustomerRepository,
		repos.CraftsmanRepository,
		repos.MaterialRepository,
		WithAppointmentAuthorizer(authorizer),
		WithAppointmentNotifier(container.Notification),
	)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepository,
		repos.AppointmentRepository,
		repos.CustomerRepository,
		repos.CraftsmanRepository,
		repos.MaterialRepository,
		WithInvoiceAuthorizer(authorizer),
		WithDocumentRenderer(renderer),
		WithInvoiceNotifier(container.Notification),
		WithPaymentTerms(cfg.DefaultPaymentTermsDays),
	)
	container.TimeEntry = NewTimeEntryService(
		repos.TimeEntryRepository,
		repos.CustomerRepository,
		repos.AppointmentRepository,
		authorizer,
	)
	container.Reporting = NewReportingService(repos.ReportingRepository, WithReportingAuthorizer(authorizer))
	container.Reminder = NewReminderService(repos.AppointmentRepository, repos.CraftsmanRepository, container.Notification)

	return container
}
