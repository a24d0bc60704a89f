// SPDX-License-Identifier: MIT

package coordinator

import "errors"

var (
	// ErrProtocol indicates a broadcast or result message that violates the
	// wire contract (inconsistent counts, bad lengths, malformed digest).
	ErrProtocol = errors.New("coordinator: protocol violation")

	// ErrBadInput indicates an Input rejected by Validate.
	ErrBadInput = errors.New("coordinator: invalid input")

	// ErrNilTransport is returned by New for a nil transport.
	ErrNilTransport = errors.New("coordinator: nil transport")

	// ErrBadWorkers indicates a worker count below one.
	ErrBadWorkers = errors.New("coordinator: workers must be >= 1")

	// ErrMissingResult indicates a pair index with no result.
	ErrMissingResult = errors.New("coordinator: missing pair result")

	// ErrDuplicateResult indicates two results for one pair index.
	ErrDuplicateResult = errors.New("coordinator: duplicate pair result")
)
