// Package config loads the service configuration from defaults, an optional
// YAML file and PARAMSPEC_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/paramspec/internal/logging"
	"github.com/aretw0/paramspec/pkg/observability"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PARAMSPEC_SERVER_PORT.
const EnvPrefix = "PARAMSPEC"

// Config holds application configuration.
type Config struct {
	Server     ServerConfig                `mapstructure:"server"`
	Log        LogConfig                   `mapstructure:"log"`
	Metrics    MetricsConfig               `mapstructure:"metrics"`
	Journal    JournalConfig               `mapstructure:"journal"`
	Tracing    observability.TracingConfig `mapstructure:"tracing"`
	Validation ValidationConfig            `mapstructure:"validation"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig selects the log level and format ("text" or "json").
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// JournalConfig selects where rejected payloads are recorded.
type JournalConfig struct {
	// Backend is one of "none", "memory" or "redis".
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`

	// Redact lists key patterns whose offending values are masked before
	// a record is stored.
	Redact []string `mapstructure:"redact"`
}

// RedisConfig holds the Redis journal connection.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
	MaxLen   int64  `mapstructure:"max_len"`
}

// ValidationConfig toggles the opt-in validation behaviours for the built-in
// schemas.
type ValidationConfig struct {
	StrictElementTypes bool `mapstructure:"strict_element_types"`
	ScalarAllowList    bool `mapstructure:"scalar_allow_list"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 5 * time.Second,
		},
		Log:     LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "paramspec"},
		Journal: JournalConfig{
			Backend: "memory",
			TTL:     time.Hour,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "paramspec:failures:",
				MaxLen: 1000,
			},
			Redact: []string{"(?i)password", "(?i)secret", "(?i)token"},
		},
		Tracing: observability.DefaultTracingConfig(),
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("journal.backend", d.Journal.Backend)
	v.SetDefault("journal.ttl", d.Journal.TTL)
	v.SetDefault("journal.redis.addr", d.Journal.Redis.Addr)
	v.SetDefault("journal.redis.password", d.Journal.Redis.Password)
	v.SetDefault("journal.redis.db", d.Journal.Redis.DB)
	v.SetDefault("journal.redis.prefix", d.Journal.Redis.Prefix)
	v.SetDefault("journal.redis.max_len", d.Journal.Redis.MaxLen)
	v.SetDefault("journal.redact", d.Journal.Redact)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("validation.strict_element_types", d.Validation.StrictElementTypes)
	v.SetDefault("validation.scalar_allow_list", d.Validation.ScalarAllowList)
}

// Load reads configuration. An explicit path must exist; without one,
// ./paramspec.yaml and then ~/.config/paramspec/config.yaml are tried.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("paramspec")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paramspec"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format must be text or json, got %q", c.Log.Format)
	}
	switch c.Journal.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("config: journal.backend must be none, memory or redis, got %q", c.Journal.Backend)
	}
	return nil
}
