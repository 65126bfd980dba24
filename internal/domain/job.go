package domain

import "time"

// Job is the canonical record every source adapter produces.
//
// ID is stable across repeated scrapes of the same listing: it is derived
// from the source prefix plus either the site-native listing id or a hash of
// the canonical URL. IsNew is recomputed by the aggregator against a single
// evaluation instant; an adapter may pre-set it from an upstream badge but
// the derived value wins. IsArchived is always false at scrape time;
// archival belongs to a downstream collaborator.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Location    string    `json:"location,omitempty"`
	Salary      string    `json:"salary,omitempty"`
	Description string    `json:"description,omitempty"`
	PostedAt    time.Time `json:"postedAt"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	IsNew       bool      `json:"isNew"`
	IsArchived  bool      `json:"isArchived"`
}

// Stats holds aggregate counters over one merged scrape result.
type Stats struct {
	TotalActiveJobs int            `json:"totalActiveJobs"`
	JobsPerSource   map[string]int `json:"jobsPerSource"`
	NewTodayCount   int            `json:"newTodayCount"`
}
