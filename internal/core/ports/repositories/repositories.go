package repositories

// RepositoryProvider bundles all repository implementations for explicit
// constructor injection. There is deliberately no process-wide registry of
// repository instances; callers construct one provider per store handle.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	CustomerRepo    CustomerRepositoryFacade
	AuditRepo       AuditRepositoryFacade
	DeviceRepo      DeviceRepositoryFacade
}
