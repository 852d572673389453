package internal

import (
	"sort"
	"strings"
)

// FindSimilarStrings returns up to maxSuggestions candidates close to target by
// case-insensitive Levenshtein distance, closest first. Ties keep candidate order.
func FindSimilarStrings(target string, candidates []string, maxSuggestions int) []string {
	if len(candidates) == 0 || maxSuggestions <= 0 {
		return nil
	}

	threshold := len(target) / 2
	if threshold < MinSuggestionDistance {
		threshold = MinSuggestionDistance
	}

	type scored struct {
		name     string
		distance int
	}

	lowered := strings.ToLower(target)
	var similar []scored
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if d := levenshteinDistance(lowered, strings.ToLower(candidate)); d <= threshold {
			similar = append(similar, scored{name: candidate, distance: d})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].distance < similar[j].distance
	})

	if len(similar) > maxSuggestions {
		similar = similar[:maxSuggestions]
	}
	result := make([]string, len(similar))
	for i, s := range similar {
		result[i] = s.name
	}
	return result
}

// levenshteinDistance is the single-character edit distance between a and b,
// computed over two rolling rows.
func levenshteinDistance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// FormatSuggestions renders suggestions as a message suffix, e.g.
// ". Did you mean 'name' or 'names'?"
func FormatSuggestions(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return ". Did you mean '" + suggestions[0] + "'?"
	}

	var sb strings.Builder
	sb.WriteString(". Did you mean ")
	for i, s := range suggestions {
		if i > 0 {
			if i == len(suggestions)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteByte('\'')
		sb.WriteString(s)
		sb.WriteByte('\'')
	}
	sb.WriteByte('?')
	return sb.String()
}
