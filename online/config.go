package online

import (
	"fmt"

	"github.com/coregx/kleene/dfa"
)

// Config configures a Matcher.
type Config struct {
	// MaxDFAStates bounds subset construction of the composite automaton
	// and of each per-pattern automaton. Zero means unbounded.
	//
	// Default: 10,000 states
	MaxDFAStates int

	// Debug enables gou debug tracing of ingestion and candidate
	// lifecycles.
	//
	// Default: false
	Debug bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates: 10_000,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxDFAStates < 0 {
		return fmt.Errorf("%w: MaxDFAStates must be >= 0, got %d", ErrInvalidConfig, c.MaxDFAStates)
	}
	return nil
}

// dfaConfig returns the subset construction limits for c.
func (c Config) dfaConfig() dfa.Config {
	return dfa.DefaultConfig().WithMaxStates(c.MaxDFAStates)
}
