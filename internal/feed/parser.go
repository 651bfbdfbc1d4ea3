package feed

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RawItem is a structurally extracted feed entry before cleaning and
// relevance filtering. Title and Description may still carry markup;
// Published is zero when the feed gave no parseable date.
type RawItem struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
	ImageURL    string
}

// Parser extracts at most max candidate items from a raw feed document.
// Malformed or partial documents yield fewer or zero items, never an error:
// a parse failure and an empty feed look identical to the caller.
type Parser interface {
	Parse(doc string, max int) []RawItem
}

// FeedParser extracts items with a full RSS/Atom document parser.
type FeedParser struct {
	fp *gofeed.Parser
}

func NewFeedParser() *FeedParser {
	return &FeedParser{fp: gofeed.NewParser()}
}

func (p *FeedParser) Parse(doc string, max int) []RawItem {
	parsed, err := p.fp.ParseString(doc)
	if err != nil || parsed == nil {
		return nil
	}

	items := make([]RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if len(items) >= max {
			break
		}

		var pub time.Time
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}

		image := ""
		if item.Image != nil {
			image = item.Image.URL
		} else {
			for _, enc := range item.Enclosures {
				if strings.HasPrefix(enc.Type, "image/") {
					image = enc.URL
					break
				}
			}
		}

		items = append(items, RawItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: desc,
			Published:   pub,
			ImageURL:    image,
		})
	}
	return items
}

// pubDateLayouts covers the date formats feeds use in the wild.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02",
}

// ParsePubDate parses a feed timestamp, returning the zero time when no
// layout matches.
func ParsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
