package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	customerRepo := newPgxCustomerRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, customerRepo)
	auditRepo := newPgxAuditRepository(dbPool)
	deviceRepo := newPgxDeviceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		CustomerRepo:    customerRepo,
		AuditRepo:       auditRepo,
		DeviceRepo:      deviceRepo,
	}
}
