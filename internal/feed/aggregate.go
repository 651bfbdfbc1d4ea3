package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/config"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/relevance"
)

// descriptionLength bounds summaries for list display.
const descriptionLength = 200

// Aggregator runs fetch, parse, and relevance filtering for every configured
// source in parallel. Each source races a fixed timeout; a slow or broken
// source contributes nothing instead of stalling the pass, and the pass as a
// whole never fails.
type Aggregator struct {
	fetcher   *Fetcher
	parser    Parser
	filter    *relevance.Filter
	sources   []config.Source
	timeout   time.Duration
	perSource int
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewAggregator(cfg *config.Config, parser Parser, metrics *observability.Metrics) *Aggregator {
	timeout := cfg.SourceTimeoutDuration()
	return &Aggregator{
		fetcher:   NewFetcher(timeout),
		parser:    parser,
		filter:    relevance.NewFilter(cfg.MatchTerms()),
		sources:   cfg.EnabledSources(),
		timeout:   timeout,
		perSource: cfg.PerSourceLimit(),
		metrics:   metrics,
		now:       time.Now,
	}
}

// FetchAll gathers relevant articles from all sources. The result is merged
// but not yet deduplicated or ranked; the hybrid orchestrator owns that step
// so Claude-sourced articles rank in the same pass.
func (a *Aggregator) FetchAll(ctx context.Context) []news.Article {
	var (
		mu    sync.Mutex
		lists = make([][]news.Article, len(a.sources))
		wg    sync.WaitGroup
	)

	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src config.Source) {
			defer wg.Done()
			articles := news.WithTimeout(ctx, a.timeout, []news.Article(nil),
				func(ctx context.Context) ([]news.Article, error) {
					return a.fetchSource(ctx, src), nil
				})
			mu.Lock()
			lists[i] = articles
			mu.Unlock()
		}(i, src)
	}
	wg.Wait()

	return news.Merge(lists...)
}

// fetchSource runs one source's fetch-parse-filter pipeline. Every failure
// mode collapses to an empty slice at this boundary.
func (a *Aggregator) fetchSource(ctx context.Context, src config.Source) []news.Article {
	doc, err := a.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			outcome = "timeout"
		}
		a.count(src.Name, outcome)
		logger.Warn("source fetch failed", "source", src.Name, "error", err)
		return nil
	}

	items := a.parser.Parse(doc, a.perSource)
	now := a.now()

	var articles []news.Article
	for _, item := range items {
		title := Clean(item.Title)
		summary := TruncateText(Clean(item.Description), descriptionLength)
		if !a.filter.Include(title, summary, item.Link) {
			continue
		}

		pub := item.Published
		if pub.IsZero() {
			pub = now
		}

		id := news.ArticleID(item.Link)
		if item.Link == "" {
			id = news.ArticleID(title)
		}

		articles = append(articles, news.Article{
			ID:          id,
			Title:       title,
			Description: summary,
			URL:         item.Link,
			Source:      src.Name,
			Published:   pub,
			ImageURL:    item.ImageURL,
			FetchMethod: news.MethodRSS,
		})
	}

	if len(articles) == 0 {
		a.count(src.Name, "empty")
	} else {
		a.count(src.Name, "ok")
	}
	logger.Debug("source fetched", "source", src.Name, "candidates", len(items), "relevant", len(articles))
	return articles
}

func (a *Aggregator) count(source, outcome string) {
	if a.metrics != nil {
		a.metrics.SourceFetches.WithLabelValues(source, outcome).Inc()
	}
}
