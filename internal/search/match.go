// Package search implements product search: a pure matching function and
// a debounced searcher that queries the catalog collaborator.
package search

import (
	"strings"

	"github.com/threadcount/storefront/internal/catalog"
)

// Match returns the products matching query, in catalog order, capped at
// limit. A product matches when the query is a case-insensitive substring
// of its name, description, category, or any tag. There is no scoring;
// first match wins.
func Match(query string, products []catalog.Product, limit int) []catalog.Product {
	matches := make([]catalog.Product, 0, limit)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return matches
	}
	for _, p := range products {
		if len(matches) >= limit {
			break
		}
		if matchesProduct(q, p) {
			matches = append(matches, p)
		}
	}
	return matches
}

func matchesProduct(q string, p catalog.Product) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
