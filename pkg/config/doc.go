// Package config loads typed configuration from environment variables.
//
// Every package owning settings declares a Config struct with `env` tags
// (github.com/caarlos0/env/v11). Load parses it once per type and caches the
// result; .env files are read through github.com/joho/godotenv.
//
//	config.MustLoad(&redisCfg)
//	config.MustLoad(&httpCfg)
//
// Errors match ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer with
// errors.Is.
package config
