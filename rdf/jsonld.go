package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// jsonldEncoder buffers triples and renders them as one JSON-LD document on Close.
type jsonldEncoder struct {
	writer  io.Writer
	opts    Options
	triples []Triple
	closed  bool
	err     error
}

func newJSONLDEncoder(w io.Writer, opts Options) Writer {
	return &jsonldEncoder{writer: w, opts: opts}
}

func (e *jsonldEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return fmt.Errorf("jsonld: writer closed")
	}
	if t.S == nil || t.P.Value == "" || t.O == nil {
		return fmt.Errorf("jsonld: missing statement fields")
	}
	e.triples = append(e.triples, t)
	return nil
}

// Flush is a no-op: a JSON-LD document can only be written once complete.
func (e *jsonldEncoder) Flush() error { return e.err }

func (e *jsonldEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true

	doc, err := triplesToJSONLD(e.triples, e.opts)
	if err != nil {
		e.err = err
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		e.err = fmt.Errorf("jsonld: marshal: %w", err)
		return e.err
	}
	if _, err := e.writer.Write(append(data, '\n')); err != nil {
		e.err = err
	}
	return e.err
}

// triplesToJSONLD converts triples to expanded JSON-LD through json-gold,
// compacting when a context is configured.
func triplesToJSONLD(triples []Triple, opts Options) (interface{}, error) {
	var nquads strings.Builder
	for _, t := range triples {
		nquads.WriteString(t.String())
		nquads.WriteByte('\n')
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := ld.NewJsonLdOptions(opts.JSONLDBase)
	goldOpts.Format = "application/n-quads"
	goldOpts.DocumentLoader = offlineDocumentLoader{}

	doc, err := proc.FromRDF(nquads.String(), goldOpts)
	if err != nil {
		return nil, fmt.Errorf("jsonld: from rdf: %w", err)
	}
	if opts.JSONLDContext == nil {
		return doc, nil
	}
	compacted, err := proc.Compact(doc, opts.JSONLDContext, goldOpts)
	if err != nil {
		return nil, fmt.Errorf("jsonld: compact: %w", err)
	}
	return compacted, nil
}

// offlineDocumentLoader refuses remote context retrieval; contexts must be
// supplied inline.
type offlineDocumentLoader struct{}

func (offlineDocumentLoader) LoadDocument(iri string) (*ld.RemoteDocument, error) {
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, fmt.Sprintf("remote document loading disabled: %s", iri))
}
