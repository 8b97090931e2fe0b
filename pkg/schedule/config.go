package schedule

import "time"

type Config struct {
	QuietStart    time.Duration `env:"QUIET_HOURS_START" envDefault:"0h"`         // QuietStart is the time of day the quiet window opens.
	QuietEnd      time.Duration `env:"QUIET_HOURS_END" envDefault:"7h"`           // QuietEnd is the time of day deferred messages are released.
	JitterMinutes int           `env:"QUIET_HOURS_JITTER_MINUTES" envDefault:"5"` // JitterMinutes is the upper bound of the random minute added to QuietEnd.
	Timezone      string        `env:"DELIVERY_TIMEZONE" envDefault:"Local"`      // Timezone is used for "now" and for timestamps without an offset.
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		QuietStart:    0,
		QuietEnd:      7 * time.Hour,
		JitterMinutes: 5,
		Timezone:      "Local",
	}
}
