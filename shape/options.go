// SPDX-License-Identifier: MIT

package shape

// Order selects which axis is most significant in flat-index space.
type Order uint8

const (
	// RowMajor makes the last axis vary fastest (C order).
	RowMajor Order = iota

	// ColumnMajor makes the first axis vary fastest (Fortran order).
	ColumnMajor
)

// DefaultOrder is the ordering used when no WithOrder option is given.
const DefaultOrder = RowMajor

const panicOrderInvalid = "shape: WithOrder: unknown major order"

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Option configures a Shape at construction.
type Option func(*options)

type options struct {
	order Order
}

// WithOrder selects the major ordering. Panics on an unknown value
// (programmer error).
func WithOrder(o Order) Option {
	if o != RowMajor && o != ColumnMajor {
		panic(panicOrderInvalid)
	}

	return func(opts *options) { opts.order = o }
}

func gatherOptions(opts ...Option) options {
	o := options{order: DefaultOrder}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
