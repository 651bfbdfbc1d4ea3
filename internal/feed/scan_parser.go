package feed

import "strings"

// ScanParser extracts items by scanning for tag boundaries instead of
// building a document tree. It exists for feeds that full XML parsers reject
// outright: truncated responses, stray control characters, unclosed tags.
// It tolerates attribute noise and namespaced or self-closing tags, and a
// document it cannot make sense of yields zero items.
type ScanParser struct{}

func NewScanParser() *ScanParser {
	return &ScanParser{}
}

func (p *ScanParser) Parse(doc string, max int) []RawItem {
	segments := splitEntries(doc, "item")
	if len(segments) == 0 {
		segments = splitEntries(doc, "entry") // Atom
	}

	items := make([]RawItem, 0, len(segments))
	for _, seg := range segments {
		if len(items) >= max {
			break
		}

		item := RawItem{
			Title:       tagText(seg, "title"),
			Link:        entryLink(seg),
			Description: firstTagText(seg, "description", "summary", "content"),
			ImageURL:    imageURL(seg),
		}
		item.Published = ParsePubDate(firstTagText(seg, "pubDate", "published", "updated", "dc:date"))

		if item.Title == "" && item.Link == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// splitEntries returns the inner text of each <tag>...</tag> block.
func splitEntries(doc, tag string) []string {
	var segments []string
	rest := doc
	for {
		start, afterOpen := findOpenTag(rest, tag)
		if start < 0 {
			return segments
		}
		rest = rest[afterOpen:]
		end := strings.Index(strings.ToLower(rest), "</"+tag+">")
		if end < 0 {
			// Unclosed trailing entry: take what is there and stop.
			if seg := strings.TrimSpace(rest); seg != "" {
				segments = append(segments, seg)
			}
			return segments
		}
		segments = append(segments, rest[:end])
		rest = rest[end+len(tag)+3:]
	}
}

// findOpenTag locates "<tag" followed by '>' , whitespace-then-attributes,
// and returns the offsets of the tag and of the character after its '>'.
// Self-closing matches are skipped since they cannot contain an entry.
func findOpenTag(doc, tag string) (start, afterOpen int) {
	lower := strings.ToLower(doc)
	offset := 0
	for {
		i := strings.Index(lower[offset:], "<"+tag)
		if i < 0 {
			return -1, -1
		}
		i += offset
		j := i + len(tag) + 1
		if j >= len(doc) {
			return -1, -1
		}
		// Reject partial matches like <itemref>.
		if doc[j] != '>' && doc[j] != ' ' && doc[j] != '\t' && doc[j] != '\n' && doc[j] != '\r' {
			offset = j
			continue
		}
		close := strings.IndexByte(doc[j:], '>')
		if close < 0 {
			return -1, -1
		}
		if close > 0 && doc[j+close-1] == '/' {
			offset = j + close + 1
			continue
		}
		return i, j + close + 1
	}
}

// tagText extracts the inner text of the first <tag> element in seg,
// unwrapping CDATA. Attributes on the tag are ignored.
func tagText(seg, tag string) string {
	_, afterOpen := findOpenTag(seg, tag)
	if afterOpen < 0 {
		return ""
	}
	rest := seg[afterOpen:]
	end := strings.Index(strings.ToLower(rest), "</"+strings.ToLower(tag)+">")
	if end < 0 {
		return ""
	}
	return unwrapCDATA(strings.TrimSpace(rest[:end]))
}

func firstTagText(seg string, tags ...string) string {
	for _, tag := range tags {
		if v := tagText(seg, tag); v != "" {
			return v
		}
	}
	return ""
}

// entryLink handles both RSS (<link>url</link>) and Atom
// (<link href="url"/>) link conventions.
func entryLink(seg string) string {
	if v := tagText(seg, "link"); v != "" {
		return v
	}
	lower := strings.ToLower(seg)
	i := strings.Index(lower, "<link")
	for i >= 0 {
		close := strings.IndexByte(seg[i:], '>')
		if close < 0 {
			return ""
		}
		tag := seg[i : i+close+1]
		if href := attrValue(tag, "href"); href != "" {
			// Prefer rel="alternate" but accept any href.
			if !strings.Contains(strings.ToLower(tag), `rel=`) ||
				strings.Contains(strings.ToLower(tag), `rel="alternate"`) {
				return href
			}
			next := strings.Index(lower[i+1:], "<link")
			if next < 0 {
				return href
			}
			i += 1 + next
			continue
		}
		next := strings.Index(lower[i+1:], "<link")
		if next < 0 {
			return ""
		}
		i += 1 + next
	}
	return ""
}

func imageURL(seg string) string {
	lower := strings.ToLower(seg)
	for _, tag := range []string{"<media:content", "<media:thumbnail", "<enclosure"} {
		i := strings.Index(lower, tag)
		if i < 0 {
			continue
		}
		close := strings.IndexByte(seg[i:], '>')
		if close < 0 {
			continue
		}
		if url := attrValue(seg[i:i+close+1], "url"); url != "" {
			return url
		}
	}
	return ""
}

func attrValue(tag, attr string) string {
	lower := strings.ToLower(tag)
	i := strings.Index(lower, attr+"=")
	if i < 0 {
		return ""
	}
	rest := tag[i+len(attr)+1:]
	if rest == "" {
		return ""
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return ""
	}
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return ""
	}
	return rest[1 : 1+end]
}

func unwrapCDATA(s string) string {
	if strings.HasPrefix(s, "<![CDATA[") && strings.HasSuffix(s, "]]>") {
		return strings.TrimSpace(s[9 : len(s)-3])
	}
	return s
}
