package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geocoder GeocoderConfig `yaml:"geocoder" mapstructure:"geocoder"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Map      MapConfig      `yaml:"map" mapstructure:"map"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// GeocoderConfig configures the Nominatim client and its retry policy.
type GeocoderConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MinDelayMs  int    `yaml:"min_delay_ms" mapstructure:"min_delay_ms"`
	MaxAttempts int    `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffSecs int    `yaml:"backoff_secs" mapstructure:"backoff_secs"`
}

// CacheConfig configures the persistent geocode cache backend.
// Driver is "sqlite", "postgres", or "none".
type CacheConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// MapConfig configures map rendering.
type MapConfig struct {
	Zoom      int    `yaml:"zoom" mapstructure:"zoom"`
	StylePath string `yaml:"style_path" mapstructure:"style_path"`
}

// ServerConfig configures the map preview server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TENANTMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "ios_tenant_mapper")
	v.SetDefault("geocoder.timeout_secs", 15)
	v.SetDefault("geocoder.min_delay_ms", 1000)
	v.SetDefault("geocoder.max_attempts", 3)
	v.SetDefault("geocoder.backoff_secs", 5)
	v.SetDefault("cache.driver", "none")
	v.SetDefault("cache.path", "geocode_cache.db")
	v.SetDefault("map.zoom", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the loaded configuration for values the pipeline
// cannot run with. All problems are reported at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Geocoder.BaseURL == "" {
		problems = append(problems, "geocoder.base_url is required")
	}
	if c.Geocoder.MaxAttempts < 1 {
		problems = append(problems, "geocoder.max_attempts must be >= 1")
	}
	if c.Geocoder.MinDelayMs < 0 {
		problems = append(problems, "geocoder.min_delay_ms must be >= 0")
	}
	if c.Geocoder.TimeoutSecs < 1 {
		problems = append(problems, "geocoder.timeout_secs must be >= 1")
	}

	switch c.Cache.Driver {
	case "none", "sqlite":
	case "postgres":
		if c.Cache.DatabaseURL == "" {
			problems = append(problems, "cache.database_url is required for the postgres driver")
		}
	default:
		problems = append(problems, "cache.driver must be one of none, sqlite, postgres")
	}

	if c.Server.Port <= 0 {
		problems = append(problems, "server.port must be > 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
