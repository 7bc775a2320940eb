// SPDX-License-Identifier: MIT

// Package canon: functional configuration for the compiler.
//
// The numeric policy (zero tolerance for DIV, NaN/Inf validation of constant
// data) is delegated to matrix.Options so dense payloads and the compiler
// agree on what "zero" means. The remaining switches are observability hooks.
package canon

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/lincanon/linop"
	"github.com/katalvlaran/lincanon/matrix"
)

// Option configures a Compiler, Compile or Build call.
type Option func(*options)

type options struct {
	numeric   []matrix.Option
	logger    *slog.Logger
	onCompile func(*linop.Node)
}

// resolved is the effective configuration a compiler runs with.
type resolved struct {
	num       matrix.Options
	logger    *slog.Logger
	onCompile func(*linop.Node)
}

// WithEpsilon sets the magnitude at or below which a DIV divisor entry is
// treated as zero. The default 0 rejects exact zeros only.
// Panics when eps is negative or not finite.
func WithEpsilon(eps float64) Option {
	set := matrix.WithEpsilon(eps)

	return func(o *options) { o.numeric = append(o.numeric, set) }
}

// WithValidateNaNInf toggles rejection of NaN/±Inf in constant data (on by default).
func WithValidateNaNInf(on bool) Option {
	set := matrix.WithNoValidateNaNInf()
	if on {
		set = matrix.WithValidateNaNInf()
	}

	return func(o *options) { o.numeric = append(o.numeric, set) }
}

// WithLogger routes debug traces to l. A nil logger silences them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = l
	}
}

// WithOnCompile installs a probe called once each time a node's rule runs.
// Cache hits do not fire it.
func WithOnCompile(fn func(*linop.Node)) Option {
	return func(o *options) { o.onCompile = fn }
}

func resolve(opts []Option) resolved {
	var o options
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}
	r := resolved{
		num:       matrix.NewOptions(o.numeric...),
		logger:    o.logger,
		onCompile: o.onCompile,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With(slog.String("component", "canon"))

	return r
}
