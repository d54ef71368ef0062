// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigcrack/vigcrack/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vigcrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 2048, cfg.Samples)
	assert.InDelta(t, 1.6, cfg.Threshold, 1e-9)
	assert.Zero(t, cfg.MaxStride)
	assert.Zero(t, cfg.Seed)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "custom values are valid", mutate: func(c *config.Config) {
			c.Samples = 512
			c.Threshold = 1.75
			c.MaxStride = 40
			c.Seed = 7
			c.LogLevel = "debug"
		}},
		{name: "zero samples rejected", mutate: func(c *config.Config) { c.Samples = 0 }, wantErr: true},
		{name: "negative threshold rejected", mutate: func(c *config.Config) { c.Threshold = -1 }, wantErr: true},
		{name: "negative max stride rejected", mutate: func(c *config.Config) { c.MaxStride = -3 }, wantErr: true},
		{name: "unknown log level rejected", mutate: func(c *config.Config) { c.LogLevel = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_ReusesSchema(t *testing.T) {
	bad := config.Default()
	bad.Samples = 0

	// An invalid config must not leave state behind in the shared schema.
	for range 3 {
		require.ErrorIs(t, bad.Validate(), config.ErrInvalidConfig)
		require.NoError(t, config.Default().Validate())
	}

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg := config.Default()
			if i%2 == 1 {
				cfg.Samples = 0
			}
			errs[i] = cfg.Validate()
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 1 {
			assert.ErrorIs(t, err, config.ErrInvalidConfig, "goroutine %d", i)
			continue
		}
		assert.NoError(t, err, "goroutine %d", i)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "samples: 4096\nthreshold: 1.7\nmax_stride: 30\nseed: 42\nlog_level: debug\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Samples:   4096,
		Threshold: 1.7,
		MaxStride: 30,
		Seed:      42,
		LogLevel:  "debug",
	}, cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "max_stride: 12\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Samples)
	assert.InDelta(t, 1.6, cfg.Threshold, 1e-9)
	assert.Equal(t, 12, cfg.MaxStride)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "sample_count: 10\n"))
		require.Error(t, err)
	})

	t.Run("schema violation", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "samples: -5\n"))
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.Config{LogLevel: "debug"}.Level())
	assert.Equal(t, slog.LevelWarn, config.Config{LogLevel: "WARN"}.Level())
	assert.Equal(t, slog.LevelInfo, config.Config{LogLevel: ""}.Level())
	assert.Equal(t, slog.LevelInfo, config.Config{LogLevel: "nonsense"}.Level())
}
