package cache

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
)

// Provider is the orchestrator behind the cache; in production it is the
// hybrid aggregator.
type Provider interface {
	FetchNews(ctx context.Context, limit int) []news.Article
}

// Source serves articles through the snapshot store:
//
//	EMPTY -> FRESH        after the first successful pass
//	FRESH -> STALE        once the TTL elapses
//	STALE -> FRESH        on a successful refresh
//	STALE -> STALE-SERVED on a failed refresh (old data kept, not erased)
//
// Freshness is checked without holding a lock across the refresh, so
// near-simultaneous stale readers may each trigger a redundant pass. The
// snapshot write is atomic, which keeps that race a benign inefficiency.
type Source struct {
	provider Provider
	store    Store
	ttl      time.Duration
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

func NewSource(provider Provider, store Store, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Source{
		provider: provider,
		store:    store,
		ttl:      ttl,
		clock:    clock,
		metrics:  metrics,
	}
}

// Fetch returns up to limit articles. It never returns an error: worst case
// (no cache, all sources down) is an empty list, and the presentation layer
// substitutes its static fallback content.
func (s *Source) Fetch(ctx context.Context, limit int) []news.Article {
	snap, ok := s.store.Get()
	if ok && s.isFresh(snap) {
		s.count("fresh")
		return s.serve(snap.Articles, limit)
	}

	articles := s.provider.FetchNews(ctx, limit)
	if len(articles) > 0 {
		if err := s.store.Set(Snapshot{Articles: articles, LastUpdated: s.clock.Now()}); err != nil {
			// A broken store must not break serving.
			logger.Warn("cache write failed", "error", err)
		}
		s.count("refresh")
		return s.serve(articles, limit)
	}

	// Refresh produced nothing: keep serving what we had.
	if ok && len(snap.Articles) > 0 {
		s.count("stale_served")
		logger.Warn("refresh returned no articles, serving stale cache",
			"cached", len(snap.Articles), "age", s.clock.Since(snap.LastUpdated))
		return s.serve(snap.Articles, limit)
	}

	s.count("empty")
	return []news.Article{}
}

func (s *Source) isFresh(snap Snapshot) bool {
	return s.clock.Since(snap.LastUpdated) < s.ttl
}

func (s *Source) serve(articles []news.Article, limit int) []news.Article {
	out := news.Truncate(articles, limit)
	if s.metrics != nil {
		s.metrics.ArticlesServed.Observe(float64(len(out)))
	}
	if out == nil {
		out = []news.Article{}
	}
	return out
}

func (s *Source) count(result string) {
	if s.metrics != nil {
		s.metrics.CacheReads.WithLabelValues(result).Inc()
	}
}
