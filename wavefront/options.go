// SPDX-License-Identifier: MIT

package wavefront

import (
	"errors"
	"runtime"
)

var (
	// ErrBadWorkers indicates a worker count below one.
	ErrBadWorkers = errors.New("wavefront: workers must be >= 1")

	// ErrBadMinParallel indicates a negative MinParallel.
	ErrBadMinParallel = errors.New("wavefront: MinParallel must be >= 0")
)

// DefaultMinParallel is the shortest diagonal that is split across workers.
// Shorter diagonals are filled by the calling goroutine.
const DefaultMinParallel = 256

// Options configures the scheduler.
//
//   - Workers     – maximum number of ranges a diagonal is split into.
//   - MinParallel – diagonals with fewer cells run inline.
type Options struct {
	Workers     int
	MinParallel int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions uses one worker per GOMAXPROCS.
func DefaultOptions() Options {
	return Options{
		Workers:     runtime.GOMAXPROCS(0),
		MinParallel: DefaultMinParallel,
	}
}

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithMinParallel sets the inline threshold. Zero splits every diagonal.
func WithMinParallel(n int) Option {
	return func(o *Options) { o.MinParallel = n }
}

func (o Options) validate() error {
	if o.Workers < 1 {
		return ErrBadWorkers
	}
	if o.MinParallel < 0 {
		return ErrBadMinParallel
	}
	return nil
}
