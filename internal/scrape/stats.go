package scrape

import (
	"time"

	"vaki-engine/internal/domain"
)

// ComputeStats derives aggregate counters from a merged job list. Pure, no
// I/O; freshness is measured against its own "now", which stays within
// sub-second skew of the instant the aggregation used.
func ComputeStats(jobs []domain.Job) domain.Stats {
	return statsAt(jobs, time.Now())
}

func statsAt(jobs []domain.Job, now time.Time) domain.Stats {
	st := domain.Stats{JobsPerSource: make(map[string]int)}
	cutoff := now.Add(-freshWindow)

	for _, j := range jobs {
		if !j.IsArchived {
			st.TotalActiveJobs++
		}
		if j.Source != "" {
			st.JobsPerSource[j.Source]++
		}
		if !j.PostedAt.IsZero() && !j.PostedAt.Before(cutoff) {
			st.NewTodayCount++
		}
	}
	return st
}
