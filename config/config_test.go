package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dsm/cluster"
	"github.com/katalvlaran/dsm/config"
	"github.com/katalvlaran/dsm/propagation"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dsm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
log:
  level: debug
  format: json
propagation:
  levels: 3
  min_weight: 0.5
  mode: count
cluster:
  pow_dep: 2
  passes: 10
  seed: 9
  restarts: 2
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 3, cfg.Propagation.Levels)
	assert.Equal(t, "count", cfg.Propagation.Mode)
	assert.Equal(t, 2.0, cfg.Cluster.PowDep)
	assert.Equal(t, 10, cfg.Cluster.Passes)
	assert.Equal(t, int64(9), cfg.Cluster.Seed)
	assert.Equal(t, 2, cfg.Cluster.Restarts)
	assert.Equal(t, cluster.DefaultExtraPenalty, cfg.Cluster.ExtraPenalty, "unset keys keep defaults")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "WARN")
	t.Setenv(config.EnvClusterSeed, "77")
	t.Setenv(config.EnvClusterRestarts, "6")
	t.Setenv(config.EnvTelemetry, "STDOUT")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, int64(77), cfg.Cluster.Seed)
	assert.Equal(t, 6, cfg.Cluster.Restarts)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)

	t.Setenv(config.EnvClusterSeed, "seven")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"bad level":    "log: {level: loud}",
		"bad format":   "log: {format: xml}",
		"zero levels":  "propagation: {levels: 0}",
		"bad mode":     "propagation: {mode: max}",
		"bad accept":   "cluster: {rand_accept: 2}",
		"no restarts":  "cluster: {restarts: 0}",
		"bad exporter": "telemetry: {exporter: jaeger}",
		"invalid yaml": "log: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestPropagationOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Propagation.Mode = "count"
	cfg.Propagation.Levels = 4

	o := propagation.DefaultOptions()
	for _, opt := range cfg.PropagationOptions() {
		opt(&o)
	}
	assert.Equal(t, 4, o.Levels)
	assert.Equal(t, propagation.ModeCount, o.Mode)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	l := cfg.Logger(&buf)
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
