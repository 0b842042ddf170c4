package services

import (
	portsrepo "github.com/kudibook/kudibook_app/internal/core/ports/repositories"
	portssvc "github.com/kudibook/kudibook_app/internal/core/ports/services"
	"github.com/kudibook/kudibook_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since the ledger and customer services record through it
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Customer = NewCustomerService(repos.CustomerRepo, container.Audit)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CustomerRepo,
		container.Audit,
		NewTransactionValidator(),
		cfg.DefaultCurrency,
	)

	container.Auth = NewAuthService(repos.DeviceRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
