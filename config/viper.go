// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by NewViper.
	EnvPrefix = "PAIRALIGN"
	// ConfigEnv names a config file to read when no --config is given.
	ConfigEnv = EnvPrefix + "_CONFIG"
)

var envReplacer = strings.NewReplacer("-", "_")

// Keys lists every setting Load resolves.
func Keys() []string {
	return []string{
		KeyWorkers, KeyLocalWorkers, KeyWavefrontThreads, KeyThreads,
		KeyMismatch, KeyGap, KeyFormat, KeyTiming,
		KeyLogLevel, KeyLogJSON, KeyMetricsAddr, KeyMemoryFraction,
	}
}

// EnvVar returns the environment variable that overrides key, e.g.
// "local-workers" -> "PAIRALIGN_LOCAL_WORKERS".
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envReplacer.Replace(key))
}

// NewViper returns a viper instance with every key bound to its PAIRALIGN_*
// environment variable and an optional config file loaded.
//
// File lookup:
//   - configFile, else $PAIRALIGN_CONFIG: must exist.
//   - otherwise config.(yaml|yml|json|toml|...) in $HOME/.pairalign, if any.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if configFile = strings.TrimSpace(configFile); configFile == "" {
		configFile = strings.TrimSpace(os.Getenv(ConfigEnv))
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
		return v, nil
	}

	return v, readOptional(v, searchDirs())
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	for _, key := range Keys() {
		if err := v.BindEnv(key, EnvVar(key)); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}
	return nil
}

func searchDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return nil
	}
	return []string{filepath.Join(home, ".pairalign")}
}

// readOptional loads "config" from the first dir holding one; none is fine.
func readOptional(v *viper.Viper, dirs []string) error {
	if len(dirs) == 0 {
		return nil
	}
	v.SetConfigName("config")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
