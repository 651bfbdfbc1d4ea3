// Package aggregator combines the two article sources: structural RSS
// aggregation first, Claude retrieval only for whatever gap remains. A
// fallback failure never degrades the result below what the primary source
// already produced.
package aggregator

import (
	"context"
	"time"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/classify"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/config"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
)

// RSSSource is the structural aggregation path.
type RSSSource interface {
	FetchAll(ctx context.Context) []news.Article
}

// LLMSource is the model-backed fallback path.
type LLMSource interface {
	IsConfigured() bool
	FetchArticles(ctx context.Context, outlet string, count int) []news.Article
}

// Hybrid orchestrates the two paths behind one FetchNews call.
type Hybrid struct {
	rss     RSSSource
	llm     LLMSource
	outlets []string
	limit   func(int) int
	metrics *observability.Metrics
}

func NewHybrid(cfg *config.Config, rss RSSSource, llm LLMSource, metrics *observability.Metrics) *Hybrid {
	var outlets []string
	if cfg.AI != nil {
		outlets = cfg.AI.Outlets
	}
	return &Hybrid{
		rss:     rss,
		llm:     llm,
		outlets: outlets,
		limit:   cfg.Limit,
		metrics: metrics,
	}
}

// FetchNews runs one aggregation pass. It never returns an error and never
// exceeds limit; when everything upstream fails the result is an empty
// (non-nil) list and the caller's cache layer decides what to serve instead.
func (h *Hybrid) FetchNews(ctx context.Context, limit int) []news.Article {
	limit = h.limit(limit)
	start := time.Now()
	defer func() {
		if h.metrics != nil {
			h.metrics.PassDuration.Observe(time.Since(start).Seconds())
		}
	}()

	articles := news.Rank(h.rss.FetchAll(ctx), limit)

	if len(articles) < limit {
		articles = h.fillFromClaude(ctx, articles, limit)
	}

	for i := range articles {
		articles[i].Category = string(classify.Classify(articles[i].Title, articles[i].Description))
	}

	logger.Info("aggregation pass complete", "articles", len(articles), "limit", limit,
		"duration_ms", time.Since(start).Milliseconds())
	if articles == nil {
		articles = []news.Article{}
	}
	return articles
}

// fillFromClaude asks the fallback path for the shortfall, dropping anything
// whose URL the RSS set already covers, then re-ranks the combined list.
func (h *Hybrid) fillFromClaude(ctx context.Context, fromRSS []news.Article, limit int) []news.Article {
	if h.llm == nil || !h.llm.IsConfigured() {
		return fromRSS
	}

	seen := make(map[string]bool, len(fromRSS))
	for _, a := range fromRSS {
		if a.URL != "" {
			seen[a.URL] = true
		}
	}

	shortfall := limit - len(fromRSS)
	var filled []news.Article
	for _, outlet := range h.outlets {
		if shortfall <= 0 {
			break
		}
		for _, a := range h.llm.FetchArticles(ctx, outlet, shortfall) {
			if a.URL != "" && seen[a.URL] {
				continue
			}
			if a.URL != "" {
				seen[a.URL] = true
			}
			filled = append(filled, a)
			shortfall--
			if shortfall <= 0 {
				break
			}
		}
	}

	if len(filled) == 0 {
		return fromRSS
	}
	return news.Rank(news.Merge(fromRSS, filled), limit)
}
