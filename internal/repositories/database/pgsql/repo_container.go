package pgsql

import (
	portsrepo "github.com/SscSPs/zimmr_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepository:          newPgxUserRepository(dbPool),
		CraftsmanRepository:     newPgxCraftsmanRepository(dbPool),
		CustomerRepository:      newPgxCustomerRepository(dbPool),
		CustomerSpaceRepository: newPgxCustomerSpaceRepository(dbPool),
		MaterialRepository:      newPgxMaterialRepository(dbPool),
		AppointmentRepository:   newPgxAppointmentRepository(dbPool),
		InvoiceRepository:       newPgxInvoiceRepository(dbPool),
		TimeEntryRepository:     newPgxTimeEntryRepository(dbPool),
		ReportingRepository:     newReportingRepository(dbPool),
	}
}
