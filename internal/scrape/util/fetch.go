package util

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Both boards vary their response by client signature; a bare Go UA gets an
// empty shell from jobs.ge. Present a realistic browser header set instead.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Fetch issues a browser-shaped GET and returns the response on 2xx. The
// caller owns the body. Redirects follow by default; the context carries the
// per-source deadline, so expiry cancels the in-flight request.
func Fetch(ctx context.Context, hc *http.Client, limiter *HostLimiter, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ka-GE,ka;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	if limiter != nil {
		if err := limiter.WaitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		res.Body.Close()
		return nil, fmt.Errorf("returned %d", res.StatusCode)
	}
	return res, nil
}
