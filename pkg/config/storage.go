package config

import (
	"fmt"
	"log"
	"strings"
)

type StorageConfig struct {
	Dir       string `koanf:"dir"`
	Namespace string `koanf:"namespace"`
}

const defaultStorageNamespace = "storefront"

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  dir: %s\n", c.Dir))
	b.WriteString(fmt.Sprintf("  namespace: %s\n", c.Namespace))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("storage directory is not configured")
	}
	if c.Namespace == "" {
		log.Println("Using default value for storage namespace")
		c.Namespace = defaultStorageNamespace
	}
	return nil
}
