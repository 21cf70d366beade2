package search

import (
	"sort"
	"strings"
)

// sizeRank is the canonical ordering of known size labels. Labels outside
// the table keep no guaranteed position.
var sizeRank = map[string]int{
	"XS":  0,
	"S":   1,
	"M":   2,
	"L":   3,
	"XL":  4,
	"XXL": 5,
}

// SortSizes orders size labels by the canonical XS..XXL table.
func SortSizes(sizes []string) {
	sort.SliceStable(sizes, func(i, j int) bool {
		return rankOf(sizes[i]) < rankOf(sizes[j])
	})
}

func rankOf(label string) int {
	if r, ok := sizeRank[label]; ok {
		return r
	}
	return -1
}

// colorVocabulary maps each base color to the synonym substrings that signal
// it in product text. Best-effort: false positives and negatives are
// expected.
var colorVocabulary = map[string][]string{
	"Red":    {"red", "crimson", "scarlet", "burgundy", "maroon"},
	"Blue":   {"blue", "navy", "azure", "cobalt", "sapphire"},
	"Green":  {"green", "emerald", "olive", "lime", "forest"},
	"Yellow": {"yellow", "gold", "amber", "mustard"},
	"Black":  {"black", "ebony", "charcoal", "jet"},
	"White":  {"white", "ivory", "cream", "pearl"},
	"Pink":   {"pink", "rose", "magenta", "fuchsia"},
	"Purple": {"purple", "violet", "lavender", "plum"},
	"Orange": {"orange", "coral", "peach", "tangerine"},
	"Brown":  {"brown", "tan", "beige", "khaki", "camel"},
	"Gray":   {"gray", "grey", "silver", "slate"},
}

// DetectColors scans product text for color synonyms and returns the base
// colors found, sorted lexicographically.
func DetectColors(text string) []string {
	lowered := strings.ToLower(text)
	var colors []string
	for base, synonyms := range colorVocabulary {
		for _, syn := range synonyms {
			if strings.Contains(lowered, syn) {
				colors = append(colors, base)
				break
			}
		}
	}
	sort.Strings(colors)
	return colors
}

func upper(s string) string {
	return strings.ToUpper(s)
}
