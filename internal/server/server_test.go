package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/briefing"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
)

type fakeSource struct {
	articles  []news.Article
	lastLimit int
}

func (f *fakeSource) Fetch(ctx context.Context, limit int) []news.Article {
	f.lastLimit = limit
	out := news.Truncate(f.articles, limit)
	if out == nil {
		out = []news.Article{}
	}
	return out
}

type fakeSummarizer struct {
	headline string
	err      error
}

func (f *fakeSummarizer) IsConfigured() bool { return true }

func (f *fakeSummarizer) Brief(ctx context.Context, titles []string) (string, error) {
	return f.headline, f.err
}

func testArticles(n int) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			Title:     "Hurricane update",
			URL:       "https://example.com/" + string(rune('a'+i)),
			Source:    "NPR",
			Published: time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func doRequest(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestNewsEndpoint(t *testing.T) {
	src := &fakeSource{articles: testArticles(3)}
	h := NewHandler(src, &fakeSummarizer{}, "Hurricane Helene", 10)

	rec := doRequest(t, h, "/api/news")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}

	var got []news.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d articles, want 3", len(got))
	}
	if src.lastLimit != 10 {
		t.Errorf("default limit = %d, want 10", src.lastLimit)
	}
}

func TestNewsEndpointLimitParam(t *testing.T) {
	src := &fakeSource{articles: testArticles(5)}
	h := NewHandler(src, &fakeSummarizer{}, "Hurricane Helene", 10)

	rec := doRequest(t, h, "/api/news?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []news.Article
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Errorf("got %d articles, want 2", len(got))
	}
	if src.lastLimit != 2 {
		t.Errorf("limit passed through = %d, want 2", src.lastLimit)
	}
}

func TestNewsEndpointInvalidLimit(t *testing.T) {
	h := NewHandler(&fakeSource{}, &fakeSummarizer{}, "Hurricane Helene", 10)

	for _, raw := range []string{"abc", "-1", "1.5"} {
		rec := doRequest(t, h, "/api/news?limit="+raw)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: status = %d, want 400", raw, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Errorf("limit=%q: expected a JSON error body, got %q", raw, rec.Body.String())
		}
	}
}

func TestNewsEndpointEmptyResult(t *testing.T) {
	h := NewHandler(&fakeSource{}, &fakeSummarizer{}, "Hurricane Helene", 10)

	rec := doRequest(t, h, "/api/news")
	if rec.Code != http.StatusOK {
		t.Fatalf("aggregation failure must not surface as an error: status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestBriefEndpoint(t *testing.T) {
	src := &fakeSource{articles: testArticles(2)}
	h := NewHandler(src, &fakeSummarizer{headline: "Helene moves inland."}, "Hurricane Helene", 10)

	rec := doRequest(t, h, "/api/news/brief")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got briefing.Brief
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if got.Headline != "Helene moves inland." {
		t.Errorf("headline = %q", got.Headline)
	}
	if got.Articles != 2 {
		t.Errorf("articles = %d, want 2", got.Articles)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := NewHandler(&fakeSource{}, &fakeSummarizer{}, "Hurricane Helene", 10)

	rec := doRequest(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewHandler(&fakeSource{}, &fakeSummarizer{}, "Hurricane Helene", 10)

	rec := doRequest(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
