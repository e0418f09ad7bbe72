package meta

// Config tunes a compiled engine. The zero value is usable: no
// prefilter, unbounded state cache, no step budget. DefaultConfig
// enables the prefilter, which is what nearly every caller wants.
type Config struct {
	// Vectorize enables the literal prefilter. When the pattern has a
	// usable fixed prefix or a small start-byte set, the driver skips
	// to candidate positions with byte searches instead of stepping
	// the DFA over every character.
	Vectorize bool

	// StateCacheLimit caps the number of DFA states retained before
	// the transition cache is cleared and rebuilt. Zero means
	// unbounded.
	StateCacheLimit uint32

	// StepLimit is the cooperative cancellation budget in input
	// characters per public call. When the budget is exhausted the
	// scan stops with a MatchAborted error carrying the position
	// reached. Zero means no budget.
	StepLimit uint64
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		Vectorize: true,
	}
}

// Validate checks the configuration. Every field value currently has
// a defined meaning, so validation never fails; the method anchors
// the call site where future constraints surface.
func (c *Config) Validate() error {
	return nil
}

// WithVectorize returns a copy of the config with the prefilter
// toggled.
func (c Config) WithVectorize(on bool) Config {
	c.Vectorize = on
	return c
}

// WithStateCacheLimit returns a copy of the config with the state cap
// set. Zero restores the unbounded default.
func (c Config) WithStateCacheLimit(limit uint32) Config {
	c.StateCacheLimit = limit
	return c
}

// WithStepLimit returns a copy of the config with the step budget
// set. Zero disables the budget.
func (c Config) WithStepLimit(limit uint64) Config {
	c.StepLimit = limit
	return c
}
