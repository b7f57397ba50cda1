package pgsql

import (
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over a shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		EmployeeRepo:    newPgxEmployeeRepository(pool),
		UserRepo:        newPgxUserRepository(pool),
		TokenRepo:       newPgxAccessTokenRepository(pool),
		ReportingRepo:   newPgxReportingRepository(pool),
	}
}
