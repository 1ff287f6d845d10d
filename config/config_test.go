package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".doctest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "shared", cfg.Mode)
	assert.False(t, cfg.EchoResult)

	re, err := cfg.MarkerRegexp()
	require.NoError(t, err)
	assert.True(t, re.MatchString(" => 1"))
	assert.True(t, re.MatchString("==> 1"))
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "timeout: 10s\nmode: isolated\necho_result: true\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, "isolated", cfg.Mode)
	assert.True(t, cfg.EchoResult)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultMarker, cfg.Marker)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "mode: sandbox\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "sandbox")

	_, err = Load(writeConfig(t, "timeout: [1, 2]\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "timeout", mutate: func(c *Config) { c.Timeout = 0 }, want: "timeout"},
		{name: "poll", mutate: func(c *Config) { c.PollInterval = -1 }, want: "poll_interval"},
		{name: "format", mutate: func(c *Config) { c.Format = "xml" }, want: "format"},
		{name: "color", mutate: func(c *Config) { c.Color = "sometimes" }, want: "color"},
		{name: "marker", mutate: func(c *Config) { c.Marker = "(" }, want: "marker"},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }, want: "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
