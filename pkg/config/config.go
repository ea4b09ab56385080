package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type AppConfig struct {
	ServiceName string `toml:"service_name"`
	Environment string `toml:"environment"`
	Port        string `toml:"port"`
	LogLevel    string `toml:"log_level"`

	Database  DatabaseConfig  `toml:"database"`
	JWT       JWTConfig       `toml:"jwt"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Telemetry TelemetryConfig `toml:"telemetry"`

	EnforceHTTPS bool `toml:"enforce_https"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
	LogSQL bool   `toml:"log_sql"`
}

type JWTConfig struct {
	Key      string   `toml:"key"`
	Issuer   string   `toml:"issuer"`
	Audience string   `toml:"audience"`
	TTL      Duration `toml:"ttl"`
}

type RateLimitConfig struct {
	Enabled  bool                    `toml:"enabled"`
	RedisURL string                  `toml:"redis_url"`
	Rules    map[string]RateLimitRule `toml:"rules"`
}

type RateLimitRule struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `toml:"otlp_endpoint"`
	MetricsPort  string `toml:"metrics_port"`
	LokiURL      string `toml:"loki_url"`
}

// Duration reads TOML strings such as "3h" or "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))

	if err != nil {
		return err
	}

	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServiceName: "tasktracker",
		Environment: "development",
		Port:        "8080",
		LogLevel:    "info",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "tasktracker.db",
		},
		JWT: JWTConfig{
			Issuer:   "tasktracker",
			Audience: "tasktracker",
			TTL:      Duration{3 * time.Hour},
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Rules: map[string]RateLimitRule{
				"POST /api/Auth/Register": {Requests: 5, Window: Duration{time.Minute}},
				"POST /api/Auth/Login":    {Requests: 10, Window: Duration{time.Minute}},
				"default":                 {Requests: 100, Window: Duration{time.Minute}},
			},
		},
		Telemetry: TelemetryConfig{
			MetricsPort: "9091",
		},
	}
}

// Load resolves defaults, then the optional TOML file named by CONFIG_FILE,
// then environment variables.
func Load() (*AppConfig, error) {
	config := GetDefaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *AppConfig) LoadFile(path string) error {
	meta, err := toml.DecodeFile(path, c)

	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))

		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return nil
}

func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, target *string) {
		if value, ok := lookup(key); ok && value != "" {
			*target = value
		}
	}

	boolean := func(key string, target *bool) error {
		value, ok := lookup(key)

		if !ok || value == "" {
			return nil
		}

		parsed, err := strconv.ParseBool(value)

		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		*target = parsed
		return nil
	}

	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DATABASE_PATH", &c.Database.Path)
	str("DATABASE_URL", &c.Database.URL)
	str("JWT_KEY", &c.JWT.Key)
	str("JWT_ISSUER", &c.JWT.Issuer)
	str("JWT_AUDIENCE", &c.JWT.Audience)
	str("REDIS_URL", &c.RateLimit.RedisURL)
	str("OTLP_ENDPOINT", &c.Telemetry.OTLPEndpoint)
	str("METRICS_PORT", &c.Telemetry.MetricsPort)
	str("LOKI_URL", &c.Telemetry.LokiURL)

	if value, ok := lookup("JWT_TTL"); ok && value != "" {
		ttl, err := time.ParseDuration(value)

		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}

		c.JWT.TTL = Duration{ttl}
	}

	if mode, ok := lookup("GIN_MODE"); ok && mode == "release" {
		c.Environment = "production"
		c.EnforceHTTPS = true
	}

	for key, target := range map[string]*bool{
		"RATE_LIMIT_ENABLED": &c.RateLimit.Enabled,
		"ENFORCE_HTTPS":      &c.EnforceHTTPS,
		"SQL_LOG":            &c.Database.LogSQL,
	} {
		if err := boolean(key, target); err != nil {
			return err
		}
	}

	return nil
}

func (c *AppConfig) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database path is required for sqlite3"))
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}

	if c.JWT.Key == "" {
		errs = append(errs, errors.New("JWT_KEY is required"))
	} else if len(c.JWT.Key) < 16 {
		errs = append(errs, errors.New("JWT_KEY must be at least 16 characters"))
	}

	if c.JWT.TTL.Duration <= 0 {
		errs = append(errs, errors.New("jwt ttl must be positive"))
	}

	for name, rule := range c.RateLimit.Rules {
		if rule.Requests <= 0 || rule.Window.Duration <= 0 {
			errs = append(errs, fmt.Errorf("rate limit rule %q needs positive requests and window", name))
		}
	}

	return errors.Join(errs...)
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}
