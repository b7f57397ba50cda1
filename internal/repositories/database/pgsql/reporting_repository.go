package pgsql

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-only repository backing the
// usage aggregator.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CountEmployees returns the total number of employee records.
func (r *PgxReportingRepository) CountEmployees(ctx context.Context) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees;`).Scan(&count)
	if err != nil {
		return 0, storageError("failed to count employees", err)
	}
	return count, nil
}

// ListAccountUsage returns the per-account figures the aggregator folds over.
// Reads take no locks; slightly stale figures are acceptable here.
func (r *PgxReportingRepository) ListAccountUsage(ctx context.Context) ([]domain.AccountUsageRow, error) {
	query := `SELECT account_id, annual_limit, used_amount, status FROM fsa_accounts;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, storageError("failed to query account usage", err)
	}
	defer rows.Close()

	usage := []domain.AccountUsageRow{}
	for rows.Next() {
		var u domain.AccountUsageRow
		if err := rows.Scan(&u.AccountID, &u.AnnualLimit, &u.UsedAmount, &u.Status); err != nil {
			return nil, storageError("failed to scan account usage row", err)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating account usage rows", err)
	}

	return usage, nil
}
