package news

import "sort"

// Merge flattens per-source article lists in input order. Dedup and ranking
// happen afterwards so that no source is truncated before the shared sort.
func Merge(lists ...[]Article) []Article {
	var total int
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]Article, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

// DedupeByURL removes later articles sharing a URL already seen. First seen
// wins, which also decides whose metadata is kept for that URL.
func DedupeByURL(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := articles[:0:0]
	for _, a := range articles {
		// URL-less articles cannot be deduplicated; pass them through.
		if a.URL != "" {
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
		}
		out = append(out, a)
	}
	return out
}

// SortByDate orders articles newest first. The sort is stable so ties keep
// their input order.
func SortByDate(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}

// Truncate caps the list at limit. Callers must merge and sort first;
// truncating per source would bias the final ranking.
func Truncate(articles []Article, limit int) []Article {
	if limit < 0 {
		limit = 0
	}
	if len(articles) > limit {
		return articles[:limit]
	}
	return articles
}

// Rank is the full dedupe-sort-truncate step applied after merging.
func Rank(articles []Article, limit int) []Article {
	out := DedupeByURL(articles)
	SortByDate(out)
	return Truncate(out, limit)
}
