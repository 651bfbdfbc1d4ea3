package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
)

type fakeProvider struct {
	results [][]news.Article
	calls   int
}

func (p *fakeProvider) FetchNews(ctx context.Context, limit int) []news.Article {
	p.calls++
	if len(p.results) == 0 {
		return nil
	}
	out := p.results[0]
	if len(p.results) > 1 {
		p.results = p.results[1:]
	}
	return out
}

func someArticles(n int) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		url := fmt.Sprintf("https://example.com/%d", i)
		out[i] = news.Article{ID: news.ArticleID(url), Title: "Hurricane update", URL: url}
	}
	return out
}

func TestFetchPopulatesAndServesFresh(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &fakeProvider{results: [][]news.Article{someArticles(3)}}
	src := NewSource(provider, NewMemoryStore(), 20*time.Minute, clock, nil)

	got := src.Fetch(context.Background(), 10)
	if len(got) != 3 {
		t.Fatalf("first fetch: got %d articles, want 3", len(got))
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}

	// Within the TTL every read is served from the snapshot.
	clock.Advance(19 * time.Minute)
	for i := 0; i < 5; i++ {
		if got := src.Fetch(context.Background(), 10); len(got) != 3 {
			t.Fatalf("cached fetch: got %d articles, want 3", len(got))
		}
	}
	if provider.calls != 1 {
		t.Errorf("fresh reads triggered refetches: provider calls = %d", provider.calls)
	}
}

func TestFetchRefreshesAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &fakeProvider{results: [][]news.Article{someArticles(3), someArticles(5)}}
	src := NewSource(provider, NewMemoryStore(), 20*time.Minute, clock, nil)

	src.Fetch(context.Background(), 10)
	clock.Advance(21 * time.Minute)

	got := src.Fetch(context.Background(), 10)
	if len(got) != 5 {
		t.Fatalf("expected refreshed snapshot of 5 articles, got %d", len(got))
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
}

func TestFetchServesStaleOnFailedRefresh(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &fakeProvider{results: [][]news.Article{someArticles(3), nil, nil}}
	src := NewSource(provider, NewMemoryStore(), 20*time.Minute, clock, nil)

	src.Fetch(context.Background(), 10)
	clock.Advance(time.Hour)

	// Refresh comes back empty; the stale snapshot is better than nothing.
	got := src.Fetch(context.Background(), 10)
	if len(got) != 3 {
		t.Fatalf("expected stale snapshot of 3 articles, got %d", len(got))
	}

	// It stays servable until a refresh finally succeeds.
	clock.Advance(time.Hour)
	if got := src.Fetch(context.Background(), 10); len(got) != 3 {
		t.Fatalf("stale snapshot was lost: got %d articles", len(got))
	}
}

func TestFetchEmptyWorstCase(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := NewSource(&fakeProvider{}, NewMemoryStore(), 20*time.Minute, clock, nil)

	got := src.Fetch(context.Background(), 10)
	if got == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected no articles, got %d", len(got))
	}
}

func TestFetchTruncatesToLimit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &fakeProvider{results: [][]news.Article{someArticles(8)}}
	src := NewSource(provider, NewMemoryStore(), 20*time.Minute, clock, nil)

	if got := src.Fetch(context.Background(), 10); len(got) != 8 {
		t.Fatalf("priming fetch: got %d", len(got))
	}
	// A smaller limit against the same snapshot trims, not refetches.
	if got := src.Fetch(context.Background(), 2); len(got) != 2 {
		t.Errorf("expected 2 articles for limit 2, got %d", len(got))
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestFetchBrokenStoreStillServes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &fakeProvider{results: [][]news.Article{someArticles(3)}}
	src := NewSource(provider, &failingStore{}, 20*time.Minute, clock, nil)

	got := src.Fetch(context.Background(), 10)
	if len(got) != 3 {
		t.Fatalf("write failure must not break serving: got %d articles", len(got))
	}
}

type failingStore struct{}

func (failingStore) Get() (Snapshot, bool) { return Snapshot{}, false }
func (failingStore) Set(Snapshot) error    { return fmt.Errorf("disk full") }
func (failingStore) Clear() error          { return nil }
