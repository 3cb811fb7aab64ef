// Package config loads mathfacts settings from flags, MATHFACTS_*
// environment variables, an optional YAML file and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/mathfacts/internal/store"
)

// EnvPrefix prefixes every environment variable, e.g. MATHFACTS_DATABASE_DSN.
const EnvPrefix = "MATHFACTS"

// Config is the resolved configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Review   ReviewConfig   `mapstructure:"review"`
	Addition AdditionConfig `mapstructure:"addition"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type ReviewConfig struct {
	Limit     int `mapstructure:"limit"`
	WeakLimit int `mapstructure:"weak_limit"`
}

type AdditionConfig struct {
	MinAttempts   int     `mapstructure:"min_attempts"`
	MaxAccuracy   float64 `mapstructure:"max_accuracy"`
	WeakLimit     int     `mapstructure:"weak_limit"`
	MasteredLimit int     `mapstructure:"mastered_limit"`
}

// WatchConfig drives the periodic due-review scan.
type WatchConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	Users       []string      `mapstructure:"users"`
	Concurrency int           `mapstructure:"concurrency"`
}

// Options locate the configuration sources.
type Options struct {
	// ConfigFile is a YAML file. Empty means ./mathfacts.yaml if present.
	ConfigFile string
	// EnvFile is loaded into the process environment before anything else.
	// Empty means ./.env. A missing file is ignored.
	EnvFile string
	// Flags, when set, override every other source for the flags listed in
	// FlagKeys that were changed on the command line.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"db-driver": "database.driver",
	"db":        "database.dsn",
	"log-level": "log.level",
	"dev":       "log.development",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("review.limit", 20)
	v.SetDefault("review.weak_limit", 10)
	v.SetDefault("addition.min_attempts", 3)
	v.SetDefault("addition.max_accuracy", 80.0)
	v.SetDefault("addition.weak_limit", 10)
	v.SetDefault("addition.mastered_limit", 50)
	v.SetDefault("watch.interval", time.Hour)
	v.SetDefault("watch.users", []string{})
	v.SetDefault("watch.concurrency", 4)
}

// Load resolves the configuration and validates it.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("mathfacts")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown drivers, bad log levels and non-positive limits.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver %q: must be %s or %s",
			c.Database.Driver, store.DriverSQLite, store.DriverPostgres))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q: %w", c.Log.Level, err))
	}

	positive := []struct {
		key string
		val int
	}{
		{"review.limit", c.Review.Limit},
		{"review.weak_limit", c.Review.WeakLimit},
		{"addition.min_attempts", c.Addition.MinAttempts},
		{"addition.weak_limit", c.Addition.WeakLimit},
		{"addition.mastered_limit", c.Addition.MasteredLimit},
		{"watch.concurrency", c.Watch.Concurrency},
	}
	for _, p := range positive {
		if p.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.key, p.val))
		}
	}

	if c.Addition.MaxAccuracy < 0 || c.Addition.MaxAccuracy > 100 {
		errs = append(errs, fmt.Errorf("addition.max_accuracy must be within 0-100, got %g", c.Addition.MaxAccuracy))
	}
	if c.Watch.Interval <= 0 {
		errs = append(errs, fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ResolveDSN returns the configured data source, falling back to the
// default SQLite path.
func (d DatabaseConfig) ResolveDSN() (string, error) {
	if d.DSN != "" || d.Driver != store.DriverSQLite {
		return d.DSN, nil
	}
	return store.DefaultDBPath()
}
