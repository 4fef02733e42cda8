package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcount/storefront/internal/catalog"
)

func fixtureCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Oxford Shirt", Description: "Classic cotton", Category: "men", Tags: []string{"formal"}},
		{ID: "p2", Name: "Chelsea Boots", Description: "Leather ankle boots", Category: "men", Tags: []string{"shoes"}},
		{ID: "p3", Name: "Summer Dress", Description: "Light and airy", Category: "women", Tags: []string{"cotton", "casual"}},
		{ID: "p4", Name: "Rain Jacket", Description: "Waterproof shell", Category: "women", Tags: []string{"outdoor"}},
	}
}

func Test_Match_Fields(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "matches name", query: "boots", expected: []string{"p2"}},
		{name: "matches description", query: "waterproof", expected: []string{"p4"}},
		{name: "matches category", query: "women", expected: []string{"p3", "p4"}},
		{name: "matches tag", query: "formal", expected: []string{"p1"}},
		{name: "case insensitive", query: "OXFORD", expected: []string{"p1"}},
		{name: "OR across fields", query: "cotton", expected: []string{"p1", "p3"}},
		{name: "no matches", query: "snorkel", expected: []string{}},
		{name: "blank query", query: "   ", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			matches := Match(tc.query, fixtureCatalog(), 8)

			// then: catalog order preserved, no scoring
			ids := make([]string, 0, len(matches))
			for _, m := range matches {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func Test_Match_CapsResults(t *testing.T) {
	// given: more matches than the cap
	products := make([]catalog.Product, 20)
	for i := range products {
		products[i] = catalog.Product{ID: fmt.Sprintf("p%d", i), Name: "Linen Shirt"}
	}

	// when
	matches := Match("shirt", products, 8)

	// then: first eight in catalog order
	require.Len(t, matches, 8)
	assert.Equal(t, "p0", matches[0].ID)
	assert.Equal(t, "p7", matches[7].ID)
}
