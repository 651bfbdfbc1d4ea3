package feed

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Clean turns feed-supplied markup into plain display text: entities are
// decoded, tags stripped, whitespace collapsed. Keyword matching runs on the
// decoded text, so this must happen before relevance filtering.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	// Decode first so entity-encoded markup ("&lt;p&gt;") is stripped too.
	s = html.UnescapeString(s)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err == nil {
		s = doc.Text()
	} else {
		s = stripTags(s)
	}

	return strings.Join(strings.Fields(s), " ")
}

// stripTags is the fallback when the HTML parser rejects the input outright.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TruncateText caps s at n runes, appending an ellipsis when it cuts.
func TruncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
