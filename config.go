package register

import "time"

// Config represents configuration for the Store
type Config struct {
	MaxRetries    int           // Retries for adapter Load/Save (default: 0, file backends are not retried)
	RetryInterval time.Duration // Base interval for exponential backoff (default: 100ms)
	MaxBackoff    time.Duration // Cap on a single backoff sleep (default: 2s)
}

// DefaultConfig returns the configuration used when New is given nil
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:    0,
		RetryInterval: 100 * time.Millisecond,
		MaxBackoff:    2 * time.Second,
	}
}
