package httpapi

import (
	"context"

	"vaki-engine/internal/domain"
)

// Aggregator is the engine surface the API forwards to.
type Aggregator interface {
	Aggregate(ctx context.Context, query, source string) ([]domain.Job, []string)
	Sources() []string
}

type Deps struct {
	Agg Aggregator
}
