// Package config loads the dsm tool configuration.
//
// Resolution order: defaults, then the YAML file (when a path is given and
// the file exists), then DSM_* environment variables. The merged result is
// validated with struct tags before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dsm/cluster"
	"github.com/katalvlaran/dsm/propagation"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment overrides.
const (
	EnvLogLevel        = "DSM_LOG_LEVEL"
	EnvLogFormat       = "DSM_LOG_FORMAT"
	EnvClusterSeed     = "DSM_CLUSTER_SEED"
	EnvClusterRestarts = "DSM_CLUSTER_RESTARTS"
	EnvTelemetry       = "DSM_TELEMETRY"
)

// Config is the top-level configuration.
type Config struct {
	Log         LogConfig         `yaml:"log" json:"log"`
	Propagation PropagationConfig `yaml:"propagation" json:"propagation"`
	Cluster     ClusterConfig     `yaml:"cluster" json:"cluster"`
	Telemetry   TelemetryConfig   `yaml:"telemetry" json:"telemetry"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
}

// PropagationConfig holds the defaults of the propagate command.
type PropagationConfig struct {
	Levels    int     `yaml:"levels" json:"levels" validate:"gte=1"`
	MinWeight float64 `yaml:"min_weight" json:"min_weight"`
	Mode      string  `yaml:"mode" json:"mode" validate:"oneof=weight count"`
}

// ClusterConfig holds the clustering parameters and the restart count.
type ClusterConfig struct {
	cluster.Params `yaml:",inline"`
	Restarts       int `yaml:"restarts" json:"restarts" validate:"gte=1"`
}

// TelemetryConfig selects the OpenTelemetry exporter. "stdout" writes spans
// and metrics to the command's error stream.
type TelemetryConfig struct {
	Exporter string `yaml:"exporter" json:"exporter" validate:"oneof=none stdout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Propagation: PropagationConfig{
			Levels: propagation.DefaultLevels,
			Mode:   propagation.ModeWeight.String(),
		},
		Cluster:   ClusterConfig{Params: cluster.DefaultParams(), Restarts: 4},
		Telemetry: TelemetryConfig{Exporter: "none"},
	}
}

// Load merges defaults, the file at path and the environment, then
// validates. An empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvTelemetry); v != "" {
		cfg.Telemetry.Exporter = strings.ToLower(v)
	}
	if v := os.Getenv(EnvClusterSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvClusterSeed, err)
		}
		cfg.Cluster.Seed = seed
	}
	if v := os.Getenv(EnvClusterRestarts); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvClusterRestarts, err)
		}
		cfg.Cluster.Restarts = k
	}

	return nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks struct tags and the clustering parameters.
func (c Config) Validate() error {
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Cluster.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// PropagationOptions converts the propagation section into Analyze options.
func (c Config) PropagationOptions() []propagation.Option {
	mode, err := propagation.ParseMode(c.Propagation.Mode)
	if err != nil {
		mode = propagation.ModeWeight
	}

	return []propagation.Option{
		propagation.WithLevels(c.Propagation.Levels),
		propagation.WithMinWeight(c.Propagation.MinWeight),
		propagation.WithMode(mode),
	}
}

// Logger builds the slog logger described by the log section, writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}

	return l
}
