// Package briefing builds the one-line situation summary shown above the
// news list. The headline is AI-written when the Claude path is configured,
// with a deterministic rollup fallback so the widget always has content.
package briefing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/news"
)

// Brief is the situation summary payload.
type Brief struct {
	Headline  string    `json:"headline"`
	Sources   string    `json:"sources"`
	Articles  int       `json:"articles"`
	Generated time.Time `json:"generated"`
}

// Summarizer writes a headline from article titles.
type Summarizer interface {
	IsConfigured() bool
	Brief(ctx context.Context, titles []string) (string, error)
}

// Generate builds a brief over the current articles. A Summarizer failure
// falls back to the rollup text; it never propagates.
func Generate(ctx context.Context, topic string, articles []news.Article, s Summarizer) Brief {
	b := Brief{
		Articles:  len(articles),
		Sources:   activeSources(articles),
		Generated: time.Now(),
	}

	if s != nil && s.IsConfigured() && len(articles) > 0 {
		titles := make([]string, 0, len(articles))
		for _, a := range articles {
			titles = append(titles, a.Title)
		}
		headline, err := s.Brief(ctx, titles)
		if err == nil && headline != "" {
			b.Headline = headline
			return b
		}
		logger.Warn("ai brief failed, using rollup", "error", err)
	}

	b.Headline = rollup(topic, articles)
	return b
}

func rollup(topic string, articles []news.Article) string {
	if len(articles) == 0 {
		return fmt.Sprintf("No new reports on %s right now.", topic)
	}
	newest := articles[0].Published
	for _, a := range articles[1:] {
		if a.Published.After(newest) {
			newest = a.Published
		}
	}
	return fmt.Sprintf("%d recent reports on %s, latest from %s.",
		len(articles), topic, newest.Format("Jan 2 15:04 MST"))
}

// activeSources lists the top contributing outlets, busiest first.
func activeSources(articles []news.Article) string {
	counts := map[string]int{}
	for _, a := range articles {
		counts[a.Source]++
	}

	type sc struct {
		name  string
		count int
	}
	var sorted []sc
	for name, count := range counts {
		sorted = append(sorted, sc{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	limit := 3
	if len(sorted) < limit {
		limit = len(sorted)
	}

	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = fmt.Sprintf("%s (%d)", sorted[i].name, sorted[i].count)
	}
	return strings.Join(parts, ", ")
}
