// SPDX-License-Identifier: MIT

// Package config resolves run settings from flags, PAIRALIGN_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/pairalign/costtable"
)

// Keys shared by flags, environment variables and config files.
const (
	KeyWorkers          = "workers"
	KeyLocalWorkers     = "local-workers"
	KeyWavefrontThreads = "wavefront-threads"
	KeyThreads          = "threads"
	KeyMismatch         = "mismatch"
	KeyGap              = "gap"
	KeyFormat           = "format"
	KeyTiming           = "timing"
	KeyLogLevel         = "log-level"
	KeyLogJSON          = "log-json"
	KeyMetricsAddr      = "metrics-addr"
	KeyMemoryFraction   = "memory-fraction"
)

// Defaults.
const (
	DefaultWorkers        = 4
	DefaultMismatch       = 3
	DefaultGap            = 2
	DefaultFormat         = "text"
	DefaultLogLevel       = "warn"
	DefaultMemoryFraction = 0.5
)

var (
	// ErrInvalid indicates a setting outside its legal range.
	ErrInvalid = errors.New("config: invalid setting")
)

// Config is the resolved run configuration.
type Config struct {
	Workers          int
	LocalWorkers     int
	WavefrontThreads int
	Threads          int
	Penalties        costtable.Penalties
	Format           string
	Timing           bool
	LogLevel         string
	LogJSON          bool
	MetricsAddr      string
	// MemoryFraction of available memory a single cost table may use;
	// 0 disables the limit.
	MemoryFraction float64
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Workers:        DefaultWorkers,
		LocalWorkers:   1,
		Penalties:      costtable.Penalties{Mismatch: DefaultMismatch, Gap: DefaultGap},
		Format:         DefaultFormat,
		Timing:         true,
		LogLevel:       DefaultLogLevel,
		MemoryFraction: DefaultMemoryFraction,
	}
}

// Load binds fs to v and reads every key. Flags the user set win over the
// environment and the config file, which win over flag defaults.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", err)
		}
	}
	d := Default()
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyLocalWorkers, d.LocalWorkers)
	v.SetDefault(KeyMismatch, d.Penalties.Mismatch)
	v.SetDefault(KeyGap, d.Penalties.Gap)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyTiming, d.Timing)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyMemoryFraction, d.MemoryFraction)

	cfg := Config{
		Workers:          v.GetInt(KeyWorkers),
		LocalWorkers:     v.GetInt(KeyLocalWorkers),
		WavefrontThreads: v.GetInt(KeyWavefrontThreads),
		Threads:          v.GetInt(KeyThreads),
		Penalties: costtable.Penalties{
			Mismatch: v.GetInt(KeyMismatch),
			Gap:      v.GetInt(KeyGap),
		},
		Format:         strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		Timing:         v.GetBool(KeyTiming),
		LogLevel:       v.GetString(KeyLogLevel),
		LogJSON:        v.GetBool(KeyLogJSON),
		MetricsAddr:    strings.TrimSpace(v.GetString(KeyMetricsAddr)),
		MemoryFraction: v.GetFloat64(KeyMemoryFraction),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges; it does not touch the system.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: %s=%d, want >= 1", ErrInvalid, KeyWorkers, c.Workers)
	case c.LocalWorkers < 1:
		return fmt.Errorf("%w: %s=%d, want >= 1", ErrInvalid, KeyLocalWorkers, c.LocalWorkers)
	case c.WavefrontThreads < 0:
		return fmt.Errorf("%w: %s=%d, want >= 0", ErrInvalid, KeyWavefrontThreads, c.WavefrontThreads)
	case c.Threads < 0:
		return fmt.Errorf("%w: %s=%d, want >= 0", ErrInvalid, KeyThreads, c.Threads)
	case c.Format != "text" && c.Format != "json":
		return fmt.Errorf("%w: %s=%q, want text or json", ErrInvalid, KeyFormat, c.Format)
	case c.MemoryFraction < 0 || c.MemoryFraction > 1:
		return fmt.Errorf("%w: %s=%g, want within [0,1]", ErrInvalid, KeyMemoryFraction, c.MemoryFraction)
	}
	if err := c.Penalties.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
