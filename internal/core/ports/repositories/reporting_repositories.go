package repositories

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
)

// ReportingRepository supplies the read-only fan-out the usage aggregator
// folds over. Reads take no locks; slightly stale figures are acceptable for
// a reporting view.
type ReportingRepository interface {
	CountEmployees(ctx context.Context) (int, error)
	ListAccountUsage(ctx context.Context) ([]domain.AccountUsageRow, error)
}
