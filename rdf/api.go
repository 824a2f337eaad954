package rdf

import (
	"context"
	"io"
)

// TripleDecoder streams RDF triples from an input.
type TripleDecoder interface {
	Next() (Triple, error)
	Err() error
	Close() error
}

// TripleHandler processes triples in push mode. Extractors emit into a
// TripleHandler; it is the only output interface they use.
type TripleHandler interface {
	Handle(Triple) error
}

// TripleHandlerFunc adapts a function to a TripleHandler.
type TripleHandlerFunc func(Triple) error

// Handle calls the underlying function.
func (h TripleHandlerFunc) Handle(t Triple) error { return h(t) }

// Writer streams RDF triples to an output.
type Writer interface {
	Write(Triple) error
	Flush() error
	Close() error
}

// WriterHandler adapts a Writer to a TripleHandler.
func WriterHandler(w Writer) TripleHandler {
	return TripleHandlerFunc(w.Write)
}

// Option configures reader/writer behavior.
type Option func(*Options)

// Options configures decoder/encoder behavior.
type Options struct {
	// Context for cancellation of decoding.
	Context context.Context

	// MaxLineBytes limits a single N-Triples line. Zero uses the default,
	// negative disables the limit.
	MaxLineBytes int

	// JSONLDContext, when set, compacts JSON-LD output against this context
	// (a context document or an IRI string).
	JSONLDContext interface{}
	// JSONLDBase is the base IRI passed to the JSON-LD processor.
	JSONLDBase string
}

// DefaultMaxLineBytes bounds N-Triples lines when no explicit limit is set.
const DefaultMaxLineBytes = 1 << 20

// NewReader creates a triple decoder for the specified format.
func NewReader(r io.Reader, format Format, opts ...Option) (TripleDecoder, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	switch format {
	case FormatNTriples:
		return newNTriplesDecoder(r, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	switch format {
	case FormatNTriples:
		return newNTriplesEncoder(w), nil
	case FormatJSONLD:
		return newJSONLDEncoder(w, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseTriples decodes r and streams triples to the handler.
// If ctx is nil, context.Background() is used as the default.
func ParseTriples(ctx context.Context, r io.Reader, format Format, handler TripleHandler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts = append(opts, OptContext(ctx))
	reader, err := NewReader(r, format, opts...)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		triple, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler.Handle(triple); err != nil {
			return err
		}
	}
}

// OptContext sets the context for cancellation.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *Options) {
		opts.MaxLineBytes = maxBytes
	}
}

// OptJSONLDContext compacts JSON-LD output against the given context.
func OptJSONLDContext(ctx interface{}) Option {
	return func(opts *Options) {
		opts.JSONLDContext = ctx
	}
}

// OptJSONLDBase sets the base IRI used by the JSON-LD processor.
func OptJSONLDBase(base string) Option {
	return func(opts *Options) {
		opts.JSONLDBase = base
	}
}

func defaultOptions() Options {
	return Options{
		MaxLineBytes: DefaultMaxLineBytes,
	}
}
