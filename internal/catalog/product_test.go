package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FlexPrice_Decode(t *testing.T) {
	testCases := []struct {
		name      string
		payload   string
		expected  int64
		expectErr bool
	}{
		{name: "number", payload: `29.99`, expected: 2999},
		{name: "integer number", payload: `30`, expected: 3000},
		{name: "numeric string", payload: `"29.99"`, expected: 2999},
		{name: "string with spaces", payload: `" 15.5 "`, expected: 1550},
		{name: "null", payload: `null`, expected: 0},
		{name: "empty string", payload: `""`, expected: 0},
		{name: "garbage string", payload: `"free"`, expectErr: true},
		{name: "negative", payload: `-1`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var p flexPrice

			// when
			err := json.Unmarshal([]byte(tc.payload), &p)

			// then
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, int64(p))
		})
	}
}

func Test_WireProduct_Normalize(t *testing.T) {
	// given: a duck-typed collaborator payload
	payload := `{
		"id": "p1",
		"name": "Oxford Shirt",
		"description": "Classic fit",
		"category": "men",
		"price": "29.99",
		"sizes": ["S", "M", "L"],
		"tags": ["shirt", "cotton"],
		"featured": true
	}`

	// when
	var wire wireProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))
	p := wire.normalize()

	// then: strict types, price in cents, absent inStock means sellable
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, int64(2999), p.Price)
	assert.True(t, p.InStock)
	assert.Empty(t, p.Subcategory)
	assert.True(t, p.Featured)
}

func Test_WireProduct_Normalize_ExplicitOutOfStock(t *testing.T) {
	// given
	payload := `{"id": "p2", "name": "Sold Out Tee", "price": 10, "inStock": false}`

	// when
	var wire wireProduct
	require.NoError(t, json.Unmarshal([]byte(payload), &wire))
	p := wire.normalize()

	// then
	assert.False(t, p.InStock)
	assert.Equal(t, int64(1000), p.Price)
}
