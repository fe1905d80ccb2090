// Package service holds the catalog query logic the public listing uses.
package service

import (
	"strings"

	"github.com/granthkosh/backend/models"
)

// FilterBooks narrows books to those matching query, optionally scoping
// translation-content matches to a language tag. An empty query matches
// everything. The match is a case-insensitive substring test over the
// title, the description, and each (language-scoped) translation's
// content; there is no ranking or fuzziness.
func FilterBooks(books []models.Book, query, language string) []models.Book {
	if query == "" {
		return books
	}
	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if BookMatches(b, query, language) {
			out = append(out, b)
		}
	}
	return out
}

// BookMatches reports whether a single book matches the search query.
func BookMatches(b models.Book, query, language string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Description), q) {
		return true
	}
	for _, tr := range b.Translations {
		if language != "" && !strings.EqualFold(tr.Language, language) {
			continue
		}
		if strings.Contains(strings.ToLower(tr.Content), q) {
			return true
		}
	}
	return false
}
