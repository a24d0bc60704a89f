// SPDX-License-Identifier: MIT

package aligner

import (
	"context"

	"github.com/katalvlaran/pairalign/costtable"
	"github.com/katalvlaran/pairalign/wavefront"
)

// Filler builds a filled cost table. Every implementation must produce the
// same values as costtable.Fill; they differ only in schedule.
type Filler interface {
	Name() string
	Fill(ctx context.Context, x, y []byte, p costtable.Penalties) (*costtable.Table, error)
}

// Sequential fills row by row on the calling goroutine.
type Sequential struct{}

// Name implements Filler.
func (Sequential) Name() string { return "sequential" }

// Fill implements Filler.
func (Sequential) Fill(_ context.Context, x, y []byte, p costtable.Penalties) (*costtable.Table, error) {
	return costtable.Fill(x, y, p)
}

// Wavefront fills anti-diagonal by anti-diagonal. Zero fields fall back to
// the wavefront package defaults.
type Wavefront struct {
	Workers     int
	MinParallel int
}

// Name implements Filler.
func (Wavefront) Name() string { return "wavefront" }

// Fill implements Filler.
func (w Wavefront) Fill(ctx context.Context, x, y []byte, p costtable.Penalties) (*costtable.Table, error) {
	var opts []wavefront.Option
	if w.Workers > 0 {
		opts = append(opts, wavefront.WithWorkers(w.Workers))
	}
	if w.MinParallel > 0 {
		opts = append(opts, wavefront.WithMinParallel(w.MinParallel))
	}
	return wavefront.Fill(ctx, x, y, p, opts...)
}

// FillerFor returns Sequential for threads <= 0 and a Wavefront with that
// many workers otherwise.
func FillerFor(threads int) Filler {
	if threads <= 0 {
		return Sequential{}
	}
	return Wavefront{Workers: threads}
}
