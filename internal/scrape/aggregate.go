// Package scrape runs the configured source adapters concurrently and merges
// their output into one deduplicated, freshness-tagged collection. Nothing is
// persisted between calls: every aggregation re-scrapes from scratch.
package scrape

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"vaki-engine/internal/domain"
	"vaki-engine/internal/scrape/types"

	"golang.org/x/sync/errgroup"
)

// SourceAll is the sentinel source filter meaning "every configured source".
const SourceAll = "all"

const defaultTimeout = 15 * time.Second

// freshWindow is how long after posting a job counts as new.
const freshWindow = 24 * time.Hour

type Aggregator struct {
	scrapers []types.Scraper
	timeout  time.Duration
	now      func() time.Time
}

func NewAggregator(scrapers []types.Scraper, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Aggregator{
		scrapers: scrapers,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Sources lists the configured adapter names.
func (a *Aggregator) Sources() []string {
	names := make([]string, 0, len(a.scrapers))
	for _, s := range a.scrapers {
		names = append(names, s.Name())
	}
	return names
}

// Aggregate fans out to the selected adapters, each under its own timeout,
// then merges, dedups, sorts by posting date and recomputes IsNew against a
// single evaluation instant. A failed or timed-out source becomes an entry
// in the returned error list; it never aborts the call. Both return values
// are non-nil.
func (a *Aggregator) Aggregate(ctx context.Context, query, source string) ([]domain.Job, []string) {
	selected := a.scrapers
	if source != "" && source != SourceAll {
		selected = nil
		for _, s := range a.scrapers {
			if s.Name() == source {
				selected = []types.Scraper{s}
				break
			}
		}
		if len(selected) == 0 {
			return []domain.Job{}, []string{"unknown source: " + source}
		}
	}

	var g errgroup.Group
	results := make(chan types.Result, len(selected))

	for _, s := range selected {
		s := s
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			log.Printf("[%s] scraping...", s.Name())
			jobs, err := s.Scrape(sctx, query)
			if err != nil {
				log.Printf("[%s] error: %v", s.Name(), err)
				results <- types.Result{Source: s.Name(), Err: fmt.Sprintf("%s: %v", s.Name(), err)}
				return nil // best-effort: don't cancel siblings
			}
			results <- types.Result{Source: s.Name(), Jobs: jobs}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	// Merge phase. Single-threaded from here on: the seen set and error
	// list are only touched after every fetch has settled.
	errs := make([]string, 0)
	var merged []domain.Job
	for res := range results {
		if res.Err != "" {
			errs = append(errs, res.Err)
			continue
		}
		merged = append(merged, res.Jobs...)
	}

	seen := make(map[string]bool, len(merged))
	jobs := merged[:0]
	for _, j := range merged {
		if seen[j.ID] {
			continue
		}
		seen[j.ID] = true
		jobs = append(jobs, j)
	}

	// Newest first; the zero time sorts last.
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].PostedAt.After(jobs[k].PostedAt)
	})

	now := a.now()
	cutoff := now.Add(-freshWindow)
	for i := range jobs {
		jobs[i].IsNew = !jobs[i].PostedAt.Before(cutoff)
	}

	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, errs
}
