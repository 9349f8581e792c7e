// SPDX-License-Identifier: MIT

package sparse

import (
	"github.com/katalvlaran/sparsity/internal/logging"
	"github.com/katalvlaran/sparsity/shape"
)

// DefaultDebugChecks disables per-write consistency checks.
const DefaultDebugChecks = false

// DefaultWorkers is the fan-out used by RightVecSumAtNZParallel when the
// caller passes workers <= 0.
const DefaultWorkers = 4

const (
	panicNilLogger = "sparse: WithLogger: logger must not be nil"
)

// Option configures a container at construction.
type Option func(*options)

type options struct {
	order  shape.Order
	logger *logging.Logger
	debug  bool
}

// WithOrder selects the major ordering used for flat indices. Panics on an
// unknown order.
func WithOrder(o shape.Order) Option {
	shape.WithOrder(o) // validates

	return func(opts *options) { opts.order = o }
}

// WithLogger attaches a structured logger. Binary logs structural row changes
// and kernel fan-outs; Matrix and Object log cell removals at Debug level.
// Panics on nil.
func WithLogger(l *logging.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(opts *options) { opts.logger = l }
}

// WithDebugChecks makes Binary verify a row's true count against its stored
// bits after every write, and the backing store its aggregates. Matrix and
// Object keep no derived state and ignore it.
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
