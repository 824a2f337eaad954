package microdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

// Extract emits the RDF triples described by the microdata in doc to sink.
// Triples are produced in document order of the top-level items. Extraction
// stops at the first error returned by sink, the first exceeded limit, or when
// ctx is done.
func Extract(ctx context.Context, doc *html.Node, sink rdf.TripleHandler, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("microdata: nil document")
	}
	if sink == nil {
		return fmt.Errorf("microdata: nil triple handler")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	x := newExtractor(doc, sink, normalizeOptions(options))

	for _, item := range topLevelItems(doc) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := x.generateTriples(item, x.root.newCopy("")); err != nil {
			return err
		}
	}
	return nil
}

// Parse reads an HTML document from r and extracts its microdata.
func Parse(ctx context.Context, r io.Reader, sink rdf.TripleHandler, opts ...Option) error {
	doc, err := html.Parse(r)
	if err != nil {
		return &rdf.ParseError{Format: "microdata", Offset: -1, Err: err}
	}
	return Extract(ctx, doc, sink, opts...)
}

// extractor holds the state of one extraction run.
type extractor struct {
	opts     Options
	sink     rdf.TripleHandler
	log      *slog.Logger
	base     string
	ids      idIndex
	root     evalContext
	bnodes   map[*html.Node]rdf.BlankNode
	bnodeGen *rdf.BlankNodeGenerator
	subs     map[string][]rdf.IRI
	emitted  int64
}

func newExtractor(doc *html.Node, sink rdf.TripleHandler, opts Options) *extractor {
	base := opts.Base
	if href, ok := findBase(doc); ok {
		base = rdf.ResolveIRI(opts.Base, href)
	}
	return &extractor{
		opts:     opts,
		sink:     sink,
		log:      opts.Logger,
		base:     base,
		ids:      buildIDIndex(doc),
		root:     newEvalContext(),
		bnodes:   make(map[*html.Node]rdf.BlankNode),
		bnodeGen: rdf.NewBlankNodeGenerator(opts.BlankNodePrefix),
		subs:     make(map[string][]rdf.IRI),
	}
}

func (x *extractor) emit(t rdf.Triple) error {
	if x.opts.MaxTriples > 0 && x.emitted >= x.opts.MaxTriples {
		return fmt.Errorf("more than %d triples: %w", x.opts.MaxTriples, rdf.ErrTripleLimitExceeded)
	}
	x.emitted++
	return x.sink.Handle(t)
}
