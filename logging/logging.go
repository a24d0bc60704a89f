// SPDX-License-Identifier: MIT

// Package logging builds the zerolog loggers handed to every component.
// Nothing in this module logs through a global logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrBadLevel indicates an unknown level name.
var ErrBadLevel = errors.New("logging: unknown level")

// ParseLevel maps a level name to a zerolog level. The empty string is info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	if name == "off" || name == "none" {
		return zerolog.Disabled, nil
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrBadLevel, name)
	}
	return lvl, nil
}

// New returns a logger writing to w at level. Output is JSON lines when
// jsonOut is set and a human console format otherwise.
func New(w io.Writer, level string, jsonOut bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := w
	if !jsonOut {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger { return zerolog.Nop() }
