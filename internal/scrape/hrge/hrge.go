// Package hrge scrapes hr.ge search results. Listings are announcement
// anchors inside card divs; company, location, salary and date are picked
// out of the surrounding card text.
package hrge

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
	sourceName       = "hr.ge"
	idPrefix         = "hrge"
	defaultBaseURL   = "https://www.hr.ge"
	fallbackLocation = "თბილისი"
)

var (
	announcementRe = regexp.MustCompile(`/announcement/(\d+)`)
	cityRe         = regexp.MustCompile(`თბილისი|ბათუმი|ქუთაისი|რუსთავი|ზუგდიდი|გორი|ფოთი|ქობულეთი|სამტრედია|ხაშური|სენაკი|მარნეული|თელავი|ახალციხე|ოზურგეთი`)
	dateRe         = regexp.MustCompile(`\d{1,2}\s*(?:იანვარი|იანვ|იან|თებერვალი|თებ|მარტი|მარ|აპრილი|აპრ|მაისი|მაი|ივნისი|ივნ|ივლისი|ივლ|აგვისტო|აგვ|სექტემბერი|სექ|ოქტომბერი|ოქტ|ნოემბერი|ნოე|დეკემბერი|დეკ)`)
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
	searchURL := s.base + "/search-posting"
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

	doc.Find(`a[href*='/announcement/']`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		m := announcementRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		nativeID := m[1]
		if seen[nativeID] {
			return
		}
		seen[nativeID] = true

		card := a.Closest("div").Parent()

		title := util.CleanText(a.Find(`h3, h2, .title, [class*='title']`).First().Text())
		if title == "" {
			title = util.CleanText(strings.SplitN(strings.TrimSpace(a.Text()), "\n", 2)[0])
		}
		if utf8.RuneCountInString(title) < 3 {
			return
		}

		fullURL := href
		if !strings.HasPrefix(href, "http") {
			fullURL = s.base + href
		}

		company := util.CleanText(card.Find(`a[href*='/customer/']`).First().Text())

		cardText := card.Text()
		location := fallbackLocation
		if city := cityRe.FindString(cardText); city != "" {
			location = city
		}

		var salary string
		if card.Find(`[class*='currency'], [class*='salary'], [class*='gel'], [class*='lari']`).Length() > 0 {
			salary = "მითითებულია"
		}

		dateText := dateRe.FindString(cardText)

		jobs = append(jobs, domain.Job{
			ID:       util.JobID(idPrefix, nativeID, fullURL),
			Title:    title,
			Company:  company,
			Location: location,
			Salary:   salary,
			PostedAt: dates.Normalize(dateText, now),
			Source:   sourceName,
			URL:      fullURL,
		})
	})

	log.Printf("[%s] parsed %d jobs", sourceName, len(jobs))
	return jobs, nil
}
