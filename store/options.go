// SPDX-License-Identifier: MIT

package store

import (
	"github.com/katalvlaran/sparsity/internal/logging"
	"github.com/katalvlaran/sparsity/shape"
)

// DefaultDebugChecks disables the per-write consistency check.
const DefaultDebugChecks = false

const panicNilLogger = "store: WithLogger: logger must not be nil"

// Option configures a Store at construction.
type Option func(*options)

type options struct {
	order  shape.Order
	logger *logging.Logger
	debug  bool
}

// WithOrder selects the major ordering reported by Shape (and used by callers
// that flatten coordinates). The tree itself is keyed by coordinate.
func WithOrder(o shape.Order) Option {
	shape.WithOrder(o) // validates; panics on unknown orders

	return func(opts *options) { opts.order = o }
}

// WithLogger attaches a structured logger. Panics on nil.
func WithLogger(l *logging.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(opts *options) { opts.logger = l }
}

// WithDebugChecks verifies the touched row's aggregates after every write and
// fails the write with ErrInconsistent on a mismatch.
func WithDebugChecks() Option {
	return func(opts *options) { opts.debug = true }
}

func gatherOptions(opts ...Option) options {
	o := options{order: shape.DefaultOrder, debug: DefaultDebugChecks}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = logging.Noop()
	}

	return o
}
