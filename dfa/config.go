package dfa

// Config bounds subset construction.
type Config struct {
	// MaxStates is the maximum number of DFA states Build may create.
	// Zero means unbounded.
	//
	// Default: 10,000 states
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}
