package services

import (
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first; the allocation engine and onboarding depend on it.
	container.Account = NewFSAAccountService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.EmployeeRepo,
		cfg.DefaultAnnualLimit,
	)

	container.Allocation = NewAllocationService(
		repos.AccountRepo,
		repos.TransactionRepo,
		container.Account,
	)

	container.Employee = NewEmployeeService(repos.EmployeeRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	container.Auth = NewUserService(
		repos.AccountRepo, // transaction manager
		repos.UserRepo,
		repos.TokenRepo,
		repos.EmployeeRepo,
		container.Account,
		cfg.AccessTokenTTL,
	)

	return container
}
