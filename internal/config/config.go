// Package config loads and validates application configuration.
//
// Values are layered, lowest precedence first: built-in defaults, an optional
// YAML file named by CONFIG_FILE, then environment variables. Keys are the
// lower-cased environment names (PORT becomes port).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `koanf:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `koanf:"database_url"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CORSOrigins is a comma-separated list of allowed cross-origin request
	// origins. Use Origins for the parsed form.
	CORSOrigins string `koanf:"cors_origins"`

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// CityBrowseLimit caps /cities when no query is given; CitySearchLimit
	// caps it while the user is typing.
	CityBrowseLimit int `koanf:"city_browse_limit"`
	CitySearchLimit int `koanf:"city_search_limit"`

	// NotifySchedule is the cron spec for the comment email dispatcher.
	NotifySchedule    string `koanf:"notify_schedule"`
	NotifyBatchSize   int    `koanf:"notify_batch_size"`
	NotifyMaxAttempts int    `koanf:"notify_max_attempts"`

	// SMTPAddr is host:port of the mail relay. Empty means emails are only logged.
	SMTPAddr     string `koanf:"smtp_addr"`
	SMTPFrom     string `koanf:"smtp_from"`
	SMTPUsername string `koanf:"smtp_username"`
	SMTPPassword string `koanf:"smtp_password"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `koanf:"migrate_on_start"`
}

// Defaults returns a Config with every optional value filled in.
func Defaults() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		CORSOrigins:       "http://localhost:5173",
		MaxBodyBytes:      1 << 20,
		CityBrowseLimit:   100,
		CitySearchLimit:   50,
		NotifySchedule:    "@every 1m",
		NotifyBatchSize:   20,
		NotifyMaxAttempts: 5,
		SMTPFrom:          "noreply@tripplanner.local",
	}
}

// Load builds a Config from defaults, the optional CONFIG_FILE and the
// environment. Returns an error listing any required values that are not set.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// Empty variables are skipped so they fall back to the file or default.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	cfg := Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins returns CORSOrigins split into a trimmed slice, ignoring empty entries.
func (c Config) Origins() []string {
	var out []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (c Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required configuration not set: %s", strings.Join(missing, ", "))
	}

	var bad []string
	if c.MaxBodyBytes <= 0 {
		bad = append(bad, "MAX_BODY_BYTES")
	}
	if c.CityBrowseLimit <= 0 {
		bad = append(bad, "CITY_BROWSE_LIMIT")
	}
	if c.CitySearchLimit <= 0 {
		bad = append(bad, "CITY_SEARCH_LIMIT")
	}
	if c.NotifyBatchSize <= 0 {
		bad = append(bad, "NOTIFY_BATCH_SIZE")
	}
	if c.NotifyMaxAttempts <= 0 {
		bad = append(bad, "NOTIFY_MAX_ATTEMPTS")
	}
	if len(bad) > 0 {
		return fmt.Errorf("configuration values must be positive: %s", strings.Join(bad, ", "))
	}
	return nil
}
