package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

type CatalogConfig struct {
	BaseURL string        `koanf:"baseurl"`
	Timeout time.Duration `koanf:"timeout"`
}

const defaultCatalogTimeout = 10 * time.Second

// String returns a string representation of the catalog collaborator configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  baseurl: %s\n", c.BaseURL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("catalog base URL is not configured")
	}
	if c.Timeout <= 0 {
		log.Println("Using default value for catalog timeout")
		c.Timeout = defaultCatalogTimeout
	}
	return nil
}
