package microdata

import (
	"log/slog"

	"github.com/geoknoesis/rdf-extract/registry"
)

// DefaultMaxDepth bounds item nesting when no explicit limit is set.
const DefaultMaxDepth = 1024

// Option configures extraction.
type Option func(*Options)

// Options configures a single extraction run.
type Options struct {
	// Base is the document base IRI. A <base href> in the document takes
	// precedence and is resolved against Base when relative.
	Base string
	// DefaultLang is used for literals when no lang/xml:lang declaration is in
	// scope.
	DefaultLang string
	// Registry supplies vocabularies and super-properties. Nil uses
	// registry.Default().
	Registry *registry.Registry

	// MaxDepth limits item nesting. Zero uses DefaultMaxDepth; negative
	// disables the limit.
	MaxDepth int
	// MaxTriples limits emitted triples. Zero or negative means unlimited.
	MaxTriples int64

	// BlankNodePrefix is prepended to generated blank node labels.
	BlankNodePrefix string

	// Logger receives debug records about skipped references and dropped
	// values. Nil discards them.
	Logger *slog.Logger
}

// OptBase sets the document base IRI.
func OptBase(base string) Option {
	return func(opts *Options) {
		opts.Base = base
	}
}

// OptDefaultLang sets the fallback language for literals.
func OptDefaultLang(lang string) Option {
	return func(opts *Options) {
		opts.DefaultLang = lang
	}
}

// OptRegistry sets the vocabulary registry.
func OptRegistry(reg *registry.Registry) Option {
	return func(opts *Options) {
		opts.Registry = reg
	}
}

// OptMaxDepth sets the maximum item nesting depth.
func OptMaxDepth(maxDepth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = maxDepth
	}
}

// OptMaxTriples sets the maximum number of emitted triples.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) {
		opts.MaxTriples = maxTriples
	}
}

// OptBlankNodePrefix sets the prefix for generated blank node labels.
func OptBlankNodePrefix(prefix string) Option {
	return func(opts *Options) {
		opts.BlankNodePrefix = prefix
	}
}

// OptLogger sets the logger for debug records.
func OptLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func defaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return opts
}
