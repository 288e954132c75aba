package models

import "strings"

// Filter is the search/category selection applied to the note list.
type Filter struct {
	SearchTerm string
	Category   Category
}

// Matches reports whether n passes f: the search term (if any) occurs
// case-insensitively in the title or content, and the category is All or
// equal to the note's.
func (f Filter) Matches(n Note) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) {
			return false
		}
	}
	return f.Category == "" || f.Category == CategoryAll || n.Category == f.Category
}

// FilterNotes returns the notes matching f in their original order. The
// input slice is never modified.
func FilterNotes(notes []Note, f Filter) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if f.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}
