package types

import (
	"context"

	"vaki-engine/internal/domain"
)

// Result is one source's contribution to a merge. Err carries expected
// failures (transport, timeout, bad markup) as text so a broken source
// degrades the aggregate instead of failing it.
type Result struct {
	Source string
	Jobs   []domain.Job
	Err    string
}

// Scraper turns one upstream site's markup into canonical Job records.
// Scrape reports expected failure modes through the error return; the
// aggregator converts them to result-level entries and keeps going.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context, query string) ([]domain.Job, error)
}
