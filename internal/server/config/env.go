package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Variables the
// process does not set are skipped. TOKEN_VALIDITY accepts time.ParseDuration
// syntax ("5h", "30m"); an invalid value is ignored rather than guessed at.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGIN"); ok {
		config.AllowedOrigin = v
	}
}
