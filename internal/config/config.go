// SPDX-License-Identifier: Apache-2.0

// Package config loads and validates the tuning parameters of the attack.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/goccy/go-yaml"
)

// ErrInvalidConfig is returned when a configuration fails schema validation.
var ErrInvalidConfig = errors.New("invalid config")

//go:embed schema.cue
var schemaSource string

// configSchema compiles the #Config definition once per process.
var configSchema = sync.OnceValues(func() (cue.Value, error) {
	schema := cuecontext.New().CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile config schema: %w", err)
	}
	return schema.LookupPath(cue.ParsePath("#Config")), nil
})

// schemaMu serializes use of the shared cue context, which is not safe for
// concurrent use.
var schemaMu sync.Mutex

// Config holds the empirical constants of the attack.
type Config struct {
	// Samples is the number of position pairs drawn per IOC estimate.
	Samples int `yaml:"samples" json:"samples"`
	// Threshold is the normalized IOC that ends the stride scan early.
	Threshold float64 `yaml:"threshold" json:"threshold"`
	// MaxStride caps the stride scan. Zero means len/2.
	MaxStride int `yaml:"max_stride" json:"max_stride"`
	// Seed seeds the sampler. Zero seeds from the clock.
	Seed     uint64 `yaml:"seed" json:"seed"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Default returns the values tuned for English text.
func Default() Config {
	return Config{
		Samples:   2048,
		Threshold: 1.6,
		LogLevel:  "info",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks c against the embedded CUE schema.
func (c Config) Validate() error {
	def, err := configSchema()
	if err != nil {
		return err
	}

	schemaMu.Lock()
	defer schemaMu.Unlock()
	if err := def.Unify(def.Context().Encode(c)).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
