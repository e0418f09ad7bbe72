package lazy

// Config tunes the lazy DFA.
//
// The only trade-off is memory against recomputation: a larger state
// cache clears less often, a smaller one recomputes more transitions.
// The DFA never fails when the cache fills; it clears and rebuilds.
type Config struct {
	// MaxStates is the maximum number of DFA states held per cache
	// generation. Reaching the limit clears the whole cache and the
	// scan rebuilds the states it still needs.
	//
	// Default: 10,000 states
	//
	// Tuning guidelines:
	//   - Simple patterns: a few hundred states suffice
	//   - Large alternations or counted loops: 10,000-100,000
	//   - Memory-constrained: 1,000
	MaxStates uint32
}

// DefaultConfig returns the configuration used when the caller passes
// the zero value nowhere. 10,000 states covers typical patterns with a
// few megabytes of transition tables.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
	}
}

// Validate checks the configuration before construction.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	return nil
}

// WithMaxStates returns a copy of the config with the state cap set.
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}
