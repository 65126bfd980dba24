// Package dates resolves the date text Georgian job boards print (relative
// phrases, bare month/day pairs, the occasional real timestamp) into an
// absolute instant. Upstream sites never emit a year, so the rules are
// conservative: the result is never in the future and never an error.
package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	daysAgoRe  = regexp.MustCompile(`(\d+)\s*(დღის|დღე|დღ|day)`)
	weeksAgoRe = regexp.MustCompile(`(\d+)\s*(კვირ|week)`)
	dayRe      = regexp.MustCompile(`\d{1,2}`)
)

var monthNames = map[string]time.Month{
	"იანვარი": time.January, "იანვ": time.January, "იან": time.January,
	"თებერვალი": time.February, "თებ": time.February,
	"მარტი": time.March, "მარ": time.March,
	"აპრილი": time.April, "აპრ": time.April,
	"მაისი": time.May, "მაი": time.May,
	"ივნისი": time.June, "ივნ": time.June,
	"ივლისი": time.July, "ივლ": time.July,
	"აგვისტო": time.August, "აგვ": time.August,
	"სექტემბერი": time.September, "სექ": time.September,
	"ოქტომბერი": time.October, "ოქტ": time.October,
	"ნოემბერი": time.November, "ნოე": time.November,
	"დეკემბერი": time.December, "დეკ": time.December,

	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// monthTokens is monthNames keyed longest-first so abbreviations never
// shadow the full form they are a prefix of.
var monthTokens = func() []string {
	toks := make([]string, 0, len(monthNames))
	for k := range monthNames {
		toks = append(toks, k)
	}
	sort.Slice(toks, func(i, j int) bool {
		if len(toks[i]) != len(toks[j]) {
			return len(toks[i]) > len(toks[j])
		}
		return toks[i] < toks[j]
	})
	return toks
}()

var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
}

// Normalize converts locale-specific date text into an absolute instant
// relative to now. It never fails: unrecognized input yields now itself.
func Normalize(text string, now time.Time) time.Time {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return now
	}

	if strings.Contains(s, "დღეს") || strings.Contains(s, "today") || s == "ახალი" {
		return now
	}
	if strings.Contains(s, "გუშინ") || strings.Contains(s, "yesterday") {
		return now.AddDate(0, 0, -1)
	}

	if m := daysAgoRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -n)
	}
	if m := weeksAgoRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -n*7)
	}

	for _, tok := range monthTokens {
		if !strings.Contains(s, tok) {
			continue
		}
		d := dayRe.FindString(s)
		if d == "" {
			break
		}
		day, _ := strconv.Atoi(d)
		t := time.Date(now.Year(), monthNames[tok], day, 0, 0, 0, 0, now.Location())
		// The site prints month/day without year, so a date later in the
		// calendar than now must belong to the previous year.
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
		return t
	}

	raw := strings.TrimSpace(text)
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return now
}
