package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables per-link statistics.
	EnableMetrics bool

	// RecoverFromPanic wraps link execution in panic recovery.
	RecoverFromPanic bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
	}
}

// WithMetrics returns a copy with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
