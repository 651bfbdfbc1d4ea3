package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies our automated traffic to feed operators.
const userAgent = "reliefnews/1.0 (+https://github.com/robdan25/gofundme-reimagined-relief-sub000)"

// maxFeedBytes caps how much of a feed document we read. Feeds are small;
// anything past this is either broken or hostile.
const maxFeedBytes = 2 << 20

// Fetcher retrieves raw feed documents over HTTP. It does not retry: the
// parallel fan-out plus the next refresh cycle substitute for retry logic.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the feed document at url. Network failures, timeouts, and
// non-2xx statuses come back as errors; the aggregator boundary converts
// every one of them into an empty contribution for that source.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching feed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return "", fmt.Errorf("reading feed body: %w", err)
	}
	return string(body), nil
}
