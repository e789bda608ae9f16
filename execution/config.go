package execution

import (
	"fmt"
	"strings"

	"github.com/TheTrio/EspressoPlayground/engine"
)

// Config holds the configuration for a controller.
type Config struct {
	// Engine parses and evaluates programs.
	// Required.
	Engine engine.Engine

	// Logger is an optional logger for observability. It only ever receives
	// run summaries, never engine messages.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Engine == nil {
		missing = append(missing, "Engine")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}
