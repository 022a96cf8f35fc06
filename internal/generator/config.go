package generator

import "time"

// Config controls the order generator's cadence and batch sizing.
type Config struct {
	RunInterval time.Duration
	BatchSize   int
	RunTimeout  time.Duration

	// DeliveryLeadDays shifts the target delivery date this many days past
	// the run day when no explicit date is requested. Zero targets the run
	// day itself.
	DeliveryLeadDays int

	// DefaultTotalCents prices an order whose plan carries no resolvable
	// total.
	DefaultTotalCents int64
}

func DefaultConfig() Config {
	return Config{
		RunInterval:       time.Hour,
		BatchSize:         50,
		RunTimeout:        5 * time.Minute,
		DefaultTotalCents: 2100,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = defaults.RunTimeout
	}
	if c.DeliveryLeadDays < 0 {
		c.DeliveryLeadDays = 0
	}
	if c.DefaultTotalCents <= 0 {
		c.DefaultTotalCents = defaults.DefaultTotalCents
	}
	return c
}
