package httpapi

import (
	"net/http"
	"strconv"

	"vaki-engine/internal/domain"
	"vaki-engine/internal/scrape"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type JobsHandler struct {
	Agg Aggregator
}

type pageInfo struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type jobsResponse struct {
	Jobs       []domain.Job `json:"jobs"`
	Stats      domain.Stats `json:"stats"`
	Pagination pageInfo     `json:"pagination"`
	Errors     []string     `json:"errors,omitempty"`
}

type newJobsResponse struct {
	Jobs   []domain.Job `json:"jobs"`
	Errors []string     `json:"errors,omitempty"`
}

// List re-scrapes every selected source and returns one page of the merged
// result. Scrape errors ride along as strings: degraded but served.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	source := q.Get("source")
	onlyNew := q.Get("onlyNew") == "true"
	page := parsePositive(q.Get("page"), 1)
	limit := parsePositive(q.Get("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	jobs, errs := h.Agg.Aggregate(r.Context(), search, source)
	stats := scrape.ComputeStats(jobs)

	filtered := jobs
	if onlyNew {
		filtered = make([]domain.Job, 0, len(jobs))
		for _, j := range jobs {
			if j.IsNew {
				filtered = append(filtered, j)
			}
		}
	}

	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	writeJSON(w, jobsResponse{
		Jobs:  filtered[start:end],
		Stats: stats,
		Pagination: pageInfo{
			Page:    page,
			Limit:   limit,
			Total:   len(filtered),
			HasMore: end < len(filtered),
		},
		Errors: errs,
	})
}

// ListNew is the /jobs result narrowed to the last 24 hours, unpaginated.
func (h JobsHandler) ListNew(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs, errs := h.Agg.Aggregate(r.Context(), q.Get("search"), q.Get("source"))

	fresh := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.IsNew {
			fresh = append(fresh, j)
		}
	}

	writeJSON(w, newJobsResponse{Jobs: fresh, Errors: errs})
}

func (h JobsHandler) Sources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"sources": append(h.Agg.Sources(), scrape.SourceAll),
	})
}

func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
