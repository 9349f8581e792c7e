// SPDX-License-Identifier: MIT

package dense

// DefaultValidateNaNInf rejects NaN and ±Inf in Set.
const DefaultValidateNaNInf = true

// Option configures a Dense at construction.
type Option func(*options)

type options struct {
	validateNaNInf bool
}

// WithValidateNaNInf enables finite-only writes (the default).
func WithValidateNaNInf() Option {
	return func(o *options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf accepts any float64 in Set.
func WithNoValidateNaNInf() Option {
	return func(o *options) { o.validateNaNInf = false }
}

func gatherOptions(opts ...Option) options {
	o := options{validateNaNInf: DefaultValidateNaNInf}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
