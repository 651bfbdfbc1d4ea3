package news

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// FetchMethod records which aggregation path produced an article. It is
// informational (diagnostics and UI labels), not load-bearing.
type FetchMethod string

const (
	MethodRSS    FetchMethod = "rss"
	MethodClaude FetchMethod = "claude"
)

// Article is the canonical unit flowing through the aggregation pipeline.
// Title and Description are plain text: HTML stripped and entities decoded.
// Articles are built fresh on every pass and never mutated afterwards.
type Article struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Source      string      `json:"source"`
	Published   time.Time   `json:"publishedDate"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Category    string      `json:"category,omitempty"`
	FetchMethod FetchMethod `json:"fetchMethod"`
}

// ArticleID derives an opaque per-cycle identifier from the article URL.
func ArticleID(url string) string {
	h := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", h[:16])
}
