package config

import (
	"fmt"
	"os"
)

// EnvAPIKey is the environment variable consulted when the config file
// does not carry a Gemini API key.
const EnvAPIKey = "GEMINI_API_KEY"

// EnvDatabaseURL is the environment variable consulted for the optional
// run-history database connection.
const EnvDatabaseURL = "DATABASE_URL"

// CredentialError indicates a required credential was missing at startup.
type CredentialError struct {
	Name string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("missing credential: %s is not set in config or environment", e.Name)
}

// ResolveAPIKey returns the Gemini API key from the config, falling back to
// the GEMINI_API_KEY environment variable. A missing key is a startup
// failure, not something deferred until the first remote call.
func ResolveAPIKey(cfg *Config) (string, error) {
	if cfg != nil && cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}
	return "", &CredentialError{Name: EnvAPIKey}
}

// ResolveDatabaseURL returns the database URL from the config or environment.
// An empty result means run history is disabled; that is not an error.
func ResolveDatabaseURL(cfg *Config) string {
	if cfg != nil && cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return os.Getenv(EnvDatabaseURL)
}
