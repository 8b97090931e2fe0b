package pg

import "time"

// Config holds the directory database settings.
type Config struct {
	ConnectionString  string        `env:"DIRECTORY_DB_URL,required"`
	MaxConns          int32         `env:"DIRECTORY_DB_MAX_CONNS" envDefault:"10"`
	MinConns          int32         `env:"DIRECTORY_DB_MIN_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"DIRECTORY_DB_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DIRECTORY_DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DIRECTORY_DB_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"DIRECTORY_DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DIRECTORY_DB_RETRY_INTERVAL" envDefault:"5s"`

	// AutoMigrate applies the bundled schema on startup. Leave it off when
	// the directory tables are owned by another service.
	AutoMigrate     bool   `env:"DIRECTORY_DB_AUTO_MIGRATE" envDefault:"false"`
	MigrationsTable string `env:"DIRECTORY_DB_MIGRATIONS_TABLE" envDefault:"dispatch_schema_migrations"`
}
