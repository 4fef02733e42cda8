// Package catalog defines the normalized product model and the client for
// the external product collaborator. Wire payloads are loosely typed
// (string-or-number prices, optional fields); they are converted exactly
// once, here, and the rest of the system operates on strict types.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Product is the normalized catalog entry. Price is integer cents.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Tags        []string `json:"tags"`
	InStock     bool     `json:"inStock"`
	Featured    bool     `json:"featured"`
}

// wireProduct mirrors the collaborator's duck-typed shape.
type wireProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Price       flexPrice `json:"price"`
	Images      []string  `json:"images"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Tags        []string  `json:"tags"`
	InStock     *bool     `json:"inStock"`
	Featured    bool      `json:"featured"`
}

func (w wireProduct) normalize() Product {
	// Absent inStock means sellable; only an explicit false hides the
	// add-to-cart affordance.
	inStock := true
	if w.InStock != nil {
		inStock = *w.InStock
	}
	return Product{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Category:    w.Category,
		Subcategory: w.Subcategory,
		Price:       int64(w.Price),
		Images:      w.Images,
		Sizes:       w.Sizes,
		Colors:      w.Colors,
		Tags:        w.Tags,
		InStock:     inStock,
		Featured:    w.Featured,
	}
}

// flexPrice decodes a price carried either as a JSON number or as a
// numeric string ("29.99") into integer cents.
type flexPrice int64

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*p = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid price %s: %w", raw, err)
		}
		raw = strings.TrimSpace(s)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if value < 0 {
		return fmt.Errorf("negative price %q", raw)
	}
	*p = flexPrice(math.Round(value * 100))
	return nil
}
