package classify

import (
	"strings"
	"unicode"
)

// Category buckets an article for the site's filter chips. Purely cosmetic:
// nothing downstream branches on it.
type Category string

const (
	StormUpdates  Category = "Storm Updates"
	ReliefEfforts Category = "Relief Efforts"
	Recovery      Category = "Recovery"
	Preparedness  Category = "Preparedness"
)

// AllCategories returns all valid categories in canonical order.
func AllCategories() []Category {
	return []Category{StormUpdates, ReliefEfforts, Recovery, Preparedness}
}

var categoryKeywords = map[Category][]string{
	StormUpdates: {
		"landfall", "storm surge", "wind", "rainfall", "forecast", "track",
		"category", "warning", "watch", "nhc", "tropical", "eyewall",
		"intensif", "downgrade", "flooding", "outage",
	},
	ReliefEfforts: {
		"donation", "donate", "relief", "volunteer", "shelter", "red cross",
		"fema", "aid", "supplies", "fundrais", "charity", "rescue",
		"evacuee", "food bank", "distribution",
	},
	Recovery: {
		"rebuild", "recovery", "restore", "restoration", "cleanup", "repair",
		"insurance", "claim", "assistance program", "grant", "reopen",
		"power restored", "debris",
	},
	Preparedness: {
		"prepare", "preparedness", "evacuation order", "evacuation route",
		"emergency kit", "sandbag", "boarding up", "supplies checklist",
		"before the storm", "mandatory evacuation",
	},
}

// Classify picks the best category for an article from its title and
// description. Title hits are weighted 2x. Defaults to Storm Updates.
func Classify(title, description string) Category {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)
	titleTokens := tokenize(title)
	descTokens := tokenize(description)

	bestCat := StormUpdates
	bestScore := 0

	for _, cat := range AllCategories() {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			if !strings.Contains(kw, " ") {
				for _, t := range titleTokens {
					if strings.Contains(t, kw) {
						score += 2
					}
				}
				for _, t := range descTokens {
					if strings.Contains(t, kw) {
						score++
					}
				}
			} else {
				if strings.Contains(titleLower, kw) {
					score += 2
				}
				if strings.Contains(descLower, kw) {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestCat = cat
		}
	}

	return bestCat
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
