package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

type NavConfig struct {
	CommitDelay time.Duration `koanf:"commitdelay"`
}

// Matches the exit-animation window of the UI layer. Changing this changes
// user-visible transition timing.
const defaultNavCommitDelay = 150 * time.Millisecond

// String returns a string representation of the navigation configuration.
func (c *NavConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Navigation ---\n")
	b.WriteString(fmt.Sprintf("  commitdelay: %s\n", c.CommitDelay))
	return b.String()
}

func (c *NavConfig) Validate() error {
	if c.CommitDelay <= 0 {
		log.Println("Using default value for navigation commitdelay")
		c.CommitDelay = defaultNavCommitDelay
	}
	return nil
}
