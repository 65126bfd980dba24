package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"vaki-engine/internal/domain"
	"vaki-engine/internal/scrape/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	name  string
	jobs  []domain.Job
	err   error
	delay time.Duration
}

func (f *fakeScraper) Name() string { return f.name }

func (f *fakeScraper) Scrape(ctx context.Context, query string) ([]domain.Job, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func job(id, source string, postedAt time.Time) domain.Job {
	return domain.Job{ID: id, Title: "some title", Source: source, PostedAt: postedAt, URL: "https://example.ge/" + id}
}

func newTestAggregator(t *testing.T, timeout time.Duration, scrapers ...types.Scraper) (*Aggregator, time.Time) {
	t.Helper()
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	agg := NewAggregator(scrapers, timeout)
	agg.now = func() time.Time { return now }
	return agg, now
}

func TestAggregate_PartialFailure(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	ok := &fakeScraper{name: "jobs.ge", jobs: []domain.Job{job("jobsge-1", "jobs.ge", now)}}
	broken := &fakeScraper{name: "hr.ge", err: errors.New("returned 503")}

	agg, _ := newTestAggregator(t, 0, ok, broken)
	jobs, errs := agg.Aggregate(context.Background(), "", "")

	require.Len(t, jobs, 1)
	assert.Equal(t, "jobsge-1", jobs[0].ID)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "hr.ge")
	assert.Contains(t, errs[0], "503")
}

func TestAggregate_Timeout(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	fast := &fakeScraper{name: "jobs.ge", jobs: []domain.Job{job("jobsge-1", "jobs.ge", now)}}
	slow := &fakeScraper{name: "hr.ge", delay: 500 * time.Millisecond, jobs: []domain.Job{job("hrge-1", "hr.ge", now)}}

	agg, _ := newTestAggregator(t, 50*time.Millisecond, fast, slow)
	jobs, errs := agg.Aggregate(context.Background(), "", "")

	require.Len(t, jobs, 1)
	assert.Equal(t, "jobsge-1", jobs[0].ID)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "hr.ge")
	assert.Contains(t, errs[0], context.DeadlineExceeded.Error())
}

func TestAggregate_DedupFirstSeenWins(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(t, 0,
		&fakeScraper{name: "jobs.ge", jobs: []domain.Job{job("x-1", "jobs.ge", now)}},
		&fakeScraper{name: "hr.ge", jobs: []domain.Job{job("x-1", "hr.ge", now)}},
	)
	jobs, errs := agg.Aggregate(context.Background(), "", "")

	assert.Empty(t, errs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "x-1", jobs[0].ID)
}

func TestAggregate_SortNewestFirst(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(t, 0, &fakeScraper{name: "jobs.ge", jobs: []domain.Job{
		job("jobsge-old", "jobs.ge", now.AddDate(0, 0, -5)),
		job("jobsge-unknown", "jobs.ge", time.Time{}),
		job("jobsge-new", "jobs.ge", now),
		job("jobsge-mid", "jobs.ge", now.AddDate(0, 0, -2)),
	}})
	jobs, _ := agg.Aggregate(context.Background(), "", "")

	require.Len(t, jobs, 4)
	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i].PostedAt.After(jobs[i-1].PostedAt),
			"jobs[%d] posted after jobs[%d]", i, i-1)
	}
	assert.Equal(t, "jobsge-unknown", jobs[3].ID, "zero time sorts last")
}

func TestAggregate_FreshnessTagging(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(t, 0, &fakeScraper{name: "jobs.ge", jobs: []domain.Job{
		job("jobsge-1", "jobs.ge", now.Add(-1*time.Hour)),
		job("jobsge-2", "jobs.ge", now.Add(-23*time.Hour)),
		job("jobsge-3", "jobs.ge", now.Add(-25*time.Hour)),
		// adapter-set badge on a stale job: the derived value must win
		{ID: "jobsge-4", Title: "badge", Source: "jobs.ge", PostedAt: now.AddDate(0, 0, -10), IsNew: true},
	}})
	jobs, _ := agg.Aggregate(context.Background(), "", "")

	byID := map[string]domain.Job{}
	for _, j := range jobs {
		byID[j.ID] = j
	}
	assert.True(t, byID["jobsge-1"].IsNew)
	assert.True(t, byID["jobsge-2"].IsNew)
	assert.False(t, byID["jobsge-3"].IsNew)
	assert.False(t, byID["jobsge-4"].IsNew)
}

func TestAggregate_SourceFilter(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(t, 0,
		&fakeScraper{name: "jobs.ge", jobs: []domain.Job{job("jobsge-1", "jobs.ge", now)}},
		&fakeScraper{name: "hr.ge", jobs: []domain.Job{job("hrge-1", "hr.ge", now)}},
	)

	jobs, errs := agg.Aggregate(context.Background(), "", "hr.ge")
	assert.Empty(t, errs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "hr.ge", jobs[0].Source)

	jobs, _ = agg.Aggregate(context.Background(), "", SourceAll)
	assert.Len(t, jobs, 2)
}

func TestAggregate_UnknownSource(t *testing.T) {
	agg, _ := newTestAggregator(t, 0, &fakeScraper{name: "jobs.ge"})
	jobs, errs := agg.Aggregate(context.Background(), "", "nosuch.ge")

	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown source")
}

func TestAggregate_NoErrorsIsEmptyNotNil(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	agg, _ := newTestAggregator(t, 0, &fakeScraper{name: "jobs.ge", jobs: []domain.Job{job("jobsge-1", "jobs.ge", now)}})
	_, errs := agg.Aggregate(context.Background(), "", "")

	assert.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestSources(t *testing.T) {
	agg, _ := newTestAggregator(t, 0, &fakeScraper{name: "jobs.ge"}, &fakeScraper{name: "hr.ge"})
	assert.Equal(t, []string{"jobs.ge", "hr.ge"}, agg.Sources())
}
