package quota

import "time"

type Config struct {
	DailyLimits map[string]int `env:"QUOTA_DAILY_LIMITS" envDefault:"trainer:4,staff:16"` // DailyLimits maps a role to its daily cap, "role:cap" pairs separated by commas.
	TableFile   string         `env:"QUOTA_TABLE_FILE"`                                   // TableFile is an optional YAML file overriding DailyLimits.
	Window      time.Duration  `env:"QUOTA_WINDOW" envDefault:"24h"`                      // Window is the TTL attached to a fresh counter.
}

// TableFromConfig builds the quota table, preferring TableFile when set.
func TableFromConfig(cfg Config) (Table, error) {
	if cfg.TableFile != "" {
		return LoadTableFile(cfg.TableFile)
	}
	return NewTable(cfg.DailyLimits)
}
