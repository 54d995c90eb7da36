// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for matrix construction.
//
// Option constructors panic only on nonsensical values (programmer error),
// mirroring the rest of the module.
package matrix

import "log/slog"

// Defaults (single source of truth).
const (
	// DefaultDomainName names the domain every matrix starts with.
	DefaultDomainName = "default"

	// DefaultGroupingName names the reserved default grouping of a domain.
	DefaultGroupingName = "(none)"

	// RowDomainName and ColDomainName name the two domains of an asymmetric matrix.
	RowDomainName = "rows"
	ColDomainName = "cols"
)

const (
	panicNilLogger = "matrix: WithLogger: logger must be non-nil"
	panicEmptyName = "matrix: WithDomainName: name must be non-empty"
)

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// Options holds construction settings for New and Load.
type Options struct {
	logger     *slog.Logger
	domainName string
	meta       Metadata
}

// defaultOptions returns Options with documented defaults.
func defaultOptions() Options {
	return Options{
		logger:     slog.Default(),
		domainName: DefaultDomainName,
	}
}

// gatherOptions applies opts over defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// WithDomainName names the initial domain of a symmetric or multi-domain
// matrix created by New. Panics on an empty name.
func WithDomainName(name string) Option {
	if name == "" {
		panic(panicEmptyName)
	}

	return func(o *Options) { o.domainName = name }
}

// WithMetadata sets the initial document metadata of a matrix created by New.
func WithMetadata(meta Metadata) Option {
	return func(o *Options) { o.meta = meta }
}
