package scoring

import (
	"strings"

	"github.com/fatih/camelcase"
)

// normalizeText lowercases free text and splits camelCase runs into separate
// words, so a smashed-together product name like "GameChangingVault" still
// matches the phrase "game-changing". Hyphens and punctuation collapse to
// spaces.
func normalizeText(s string) string {
	var words []string
	for _, field := range strings.FieldsFunc(s, isSeparator) {
		for _, part := range camelcase.Split(field) {
			words = append(words, strings.ToLower(part))
		}
	}
	return strings.Join(words, " ")
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '-', '_', '.', ',', ';', ':', '!', '?', '(', ')', '[', ']', '"', '\'', '*', '#', '`', '/':
		return true
	}
	return false
}

// distinctMatches returns the vocabulary terms present in text, preserving
// vocabulary order. Multi-word terms match as substrings of the normalized
// text; single tokens match whole words only, so "ico" does not fire on
// "silicon".
func distinctMatches(normalized string, terms []string) []string {
	wordSet := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		wordSet[w] = struct{}{}
	}

	var matched []string
	for _, term := range terms {
		t := normalizeText(term)
		if t == "" {
			continue
		}
		if strings.Contains(t, " ") {
			if strings.Contains(normalized, t) {
				matched = append(matched, term)
			}
			continue
		}
		if _, ok := wordSet[t]; ok {
			matched = append(matched, term)
		}
	}
	return matched
}
