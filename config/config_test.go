package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"junqi/meta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	cases := map[string]time.Duration{
		"500ms":  500 * time.Millisecond,
		"1s":     time.Second,
		"1.5s":   1500 * time.Millisecond,
		".5s":    500 * time.Millisecond,
		"10.9ms": 10 * time.Millisecond,
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "1", "ms", "1m", "1.s", "-1s", "1 s", "1h"} {
		_, err := ParseTime(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"-g", "2", "-t", "250ms"})
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Turn)
	assert.Equal(t, 250*time.Millisecond, cfg.Time)
	assert.Equal(t, "logs", cfg.LogsDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "", cfg.Template)
	assert.Equal(t, "", cfg.MetricsDir)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, meta.GO_ROUTINES, cfg.Goroutines)
	assert.Equal(t, 0.0, cfg.Temperature)
	assert.Equal(t, 0, cfg.SelfPlay)
}

func TestLoad_LongFlags(t *testing.T) {
	cfg, err := Load([]string{
		"--go=1", "--time", "2s",
		"--logs-dir", "/tmp/junqi", "--log-level", "info",
		"--template", "board.txt", "--metrics-dir", "out",
		"--seed", "42", "--goroutines", "8", "--temperature", "0.5",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Turn)
	assert.Equal(t, 2*time.Second, cfg.Time)
	assert.Equal(t, "/tmp/junqi", cfg.LogsDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "board.txt", cfg.Template)
	assert.Equal(t, "out", cfg.MetricsDir)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 8, cfg.Goroutines)
	assert.Equal(t, 0.5, cfg.Temperature)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("JUNQI_LOG_LEVEL", "warn")
	t.Setenv("JUNQI_SEED", "7")

	cfg, err := Load([]string{"-g", "1", "-t", "1s"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, uint64(7), cfg.Seed)

	cfg, err = Load([]string{"-g", "1", "-t", "1s", "--seed", "9"})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Seed, "flags take precedence over the environment")
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junqi.yaml")
	content := "logs-dir: /var/log/junqi\ngoroutines: 2\ntime: 750ms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load([]string{"-g", "1", "--config", path})
	require.NoError(t, err)
	assert.Equal(t, "/var/log/junqi", cfg.LogsDir)
	assert.Equal(t, 2, cfg.Goroutines)
	assert.Equal(t, 750*time.Millisecond, cfg.Time)

	_, err = Load([]string{"-g", "1", "-t", "1s", "--config", filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_SelfPlay(t *testing.T) {
	cfg, err := Load([]string{"--selfplay", "3"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SelfPlay)
	assert.Equal(t, 1, cfg.Turn)
	assert.Equal(t, meta.THINK_TIME, cfg.Time)
}

func TestLoad_Invalid(t *testing.T) {
	for name, args := range map[string][]string{
		"no arguments":    {},
		"missing time":    {"-g", "1"},
		"missing player":  {"-t", "1s"},
		"bad player":      {"-g", "3", "-t", "1s"},
		"bad time":        {"-g", "1", "-t", "soon"},
		"unknown flag":    {"-g", "1", "-t", "1s", "--fast"},
		"zero goroutines": {"-g", "1", "-t", "1s", "--goroutines", "0"},
	} {
		_, err := Load(args)
		require.ErrorIs(t, err, ErrUsage, name)
		assert.Contains(t, err.Error(), "--time", name)
	}
}
