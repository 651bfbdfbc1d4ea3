// Package relevance decides whether a candidate article is about the
// configured disaster event. Matching is a case-insensitive substring check
// over decoded title and summary text, so callers must sanitize first.
package relevance

import "strings"

// Filter holds the lowercased match terms for one event: its name, aliases,
// and topic keywords.
type Filter struct {
	terms []string
}

func NewFilter(terms []string) *Filter {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &Filter{terms: lowered}
}

// Matches reports whether title or summary mentions any configured term.
func (f *Filter) Matches(title, summary string) bool {
	text := strings.ToLower(title + " " + summary)
	for _, term := range f.terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Renderable reports whether an item has enough identity to display and
// deduplicate. Items missing both a usable title and URL are always
// excluded, keyword match or not.
func Renderable(title, url string) bool {
	return strings.TrimSpace(title) != "" || strings.TrimSpace(url) != ""
}

// Include is the full gate applied to each candidate item.
func (f *Filter) Include(title, summary, url string) bool {
	if !Renderable(title, url) {
		return false
	}
	return f.Matches(title, summary)
}
