package cities

import "strings"

// Filter returns the ordered subsequence of entries whose city or state name
// contains the query, case-insensitively. A trimmed-empty query returns the
// input unchanged. The scan is intentionally naive; the dataset is a
// country-level city list in the low thousands and this runs per keystroke.
func Filter(entries []Entry, query string) []Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return entries
	}

	needle := strings.ToLower(trimmed)
	matches := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.City), needle) ||
			strings.Contains(strings.ToLower(entry.State), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}
