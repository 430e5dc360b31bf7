package repositories

// RepositoryProvider gives the service layer access to all repositories.
type RepositoryProvider struct {
	UserRepository          UserRepositoryWithTx
	CraftsmanRepository     CraftsmanRepositoryFacade
	CustomerRepository      CustomerRepositoryFacade
	CustomerSpaceRepository CustomerSpaceRepositoryFacade
	MaterialRepository      MaterialRepositoryFacade
	AppointmentRepository   AppointmentRepositoryWithTx
	InvoiceRepository       InvoiceRepositoryWithTx
	TimeEntryRepository     TimeEntryRepositoryFacade
	ReportingRepository     ReportingRepositoryFacade
}
