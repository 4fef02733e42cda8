package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

type SearchConfig struct {
	Debounce   time.Duration `koanf:"debounce"`
	MaxResults int           `koanf:"maxresults"`
}

const defaultSearchDebounce = 300 * time.Millisecond
const defaultSearchMaxResults = 8

// String returns a string representation of the search configuration.
func (c *SearchConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Search ---\n")
	b.WriteString(fmt.Sprintf("  debounce: %s\n", c.Debounce))
	b.WriteString(fmt.Sprintf("  maxresults: %d\n", c.MaxResults))
	return b.String()
}

func (c *SearchConfig) Validate() error {
	if c.Debounce <= 0 {
		log.Println("Using default value for search debounce")
		c.Debounce = defaultSearchDebounce
	}
	if c.MaxResults <= 0 {
		log.Println("Using default value for search maxresults")
		c.MaxResults = defaultSearchMaxResults
	}
	return nil
}
