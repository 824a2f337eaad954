// Package rdf provides the compact RDF model shared by the extractors, plus
// the sinks they stream into.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Terms are IRI, BlankNode and Literal; statements are Triple values. Extractors
// push triples into a TripleHandler, the only output interface they depend on.
// Writers adapt a handler to a serialization:
//   - N-Triples: streamed line by line.
//   - JSON-LD: buffered and converted with json-gold on Close, optionally compacted
//     against a caller supplied context. Remote contexts are never fetched.
//
// An N-Triples decoder is also provided so expected output can be written as
// N-Triples in tests and fixtures.
//
// Example (writing extracted triples):
//
//	w, err := rdf.NewWriter(os.Stdout, rdf.FormatNTriples)
//	if err != nil {
//	    // handle error
//	}
//	defer w.Close()
//	err = microdata.Parse(ctx, r, rdf.WriterHandler(w), microdata.OptBase(base))
//
// Errors carry codes; use Code(err) to classify them (for example
// ErrCodeDepthExceeded or ErrCodeTripleLimitExceeded).
package rdf
