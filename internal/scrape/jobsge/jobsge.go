// Package jobsge scrapes the jobs.ge listing table. The site has no public
// API; listings live in plain table rows, so extraction leans on structural
// heuristics around the view=jobs anchors.
package jobsge

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"vaki-engine/internal/domain"
	"vaki-engine/internal/scrape/dates"
	"vaki-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	sourceName       = "jobs.ge"
	idPrefix         = "jobsge"
	defaultBaseURL   = "https://www.jobs.ge"
	fallbackLocation = "თბილისი"
)

var (
	jobIDRe = regexp.MustCompile(`id=(\d+)`)
	monthRe = regexp.MustCompile(`იანვარი|იანვ|იან|თებერვალი|თებ|მარტი|მარ|აპრილი|აპრ|მაისი|მაი|ივნისი|ივნ|ივლისი|ივლ|აგვისტო|აგვ|სექტემბერი|სექ|ოქტომბერი|ოქტ|ნოემბერი|ნოე|დეკემბერი|დეკ`)
)

type Scraper struct {
	base    string
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		base:    defaultBaseURL,
		hc:      util.NewClient(20 * time.Second),
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return sourceName }

func (s *Scraper) Scrape(ctx context.Context, query string) ([]domain.Job, error) {
	searchURL := s.base + "/ge/"
	if query != "" {
		searchURL += "?q=" + url.QueryEscape(query)
	}

	res, err := util.Fetch(ctx, s.hc, s.limiter, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	now := time.Now()
	seen := map[string]bool{}
	var jobs []domain.Job

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		link := row.Find(`a[href*='view=jobs']`).First()
		if link.Length() == 0 {
			return
		}
		title := util.CleanText(link.Text())
		href, _ := link.Attr("href")
		if href == "" || utf8.RuneCountInString(title) < 3 {
			return
		}

		fullURL := href
		if !strings.HasPrefix(href, "http") {
			fullURL = s.base + href
		}

		var nativeID string
		if m := jobIDRe.FindStringSubmatch(href); m != nil {
			nativeID = m[1]
		}
		key := nativeID
		if key == "" {
			key = fullURL
		}
		if seen[key] {
			return
		}
		seen[key] = true

		var company string
		if cl := row.Find(`a[href*='view=client']`).First(); cl.Length() > 0 {
			company = util.CleanText(cl.Text())
		}

		// Location shows up as italic text after a dash in the title cell.
		location := fallbackLocation
		if loc := util.CleanText(row.Find("i, em").First().Text()); loc != "" {
			location = strings.TrimSpace(strings.TrimPrefix(loc, "-"))
		}

		var dateText string
		cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			if t := util.CleanText(cell.Text()); monthRe.MatchString(t) {
				dateText = t
				return false
			}
			return true
		})

		// The site flags fresh listings with an "ახალი" badge; the
		// aggregator recomputes IsNew authoritatively during merge.
		isNew := row.Find(`img[alt*='ახალი'], img[src*='new'], .new`).Length() > 0

		var salary string
		if row.Find(`img[alt*='ხელფასი'], img[src*='salary']`).Length() > 0 {
			salary = "მითითებულია"
		}

		jobs = append(jobs, domain.Job{
			ID:       util.JobID(idPrefix, nativeID, fullURL),
			Title:    title,
			Company:  company,
			Location: location,
			Salary:   salary,
			PostedAt: dates.Normalize(dateText, now),
			Source:   sourceName,
			URL:      fullURL,
			IsNew:    isNew,
		})
	})

	log.Printf("[%s] parsed %d jobs", sourceName, len(jobs))
	return jobs, nil
}
