package services

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
)

// ReportingSvcFacade computes fleet-wide derived views.
type ReportingSvcFacade interface {
	// ComputeAggregateUsage folds over all employees and accounts. The read
	// is non-transactional; approximate consistency under concurrent writes
	// is acceptable for reporting.
	ComputeAggregateUsage(ctx context.Context) (*domain.AggregateUsage, error)
}
