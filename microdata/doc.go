// Package microdata extracts RDF triples from HTML microdata.
//
// Every top-level item (an element with itemscope and no itemprop) becomes a
// subject: its itemid when that is an absolute IRI, otherwise a blank node.
// Property names are mapped to predicate IRIs through the item's vocabulary,
// which comes from a registry entry matching the item type or is derived from
// the type IRI. Values follow the element: URLs for links and embedded media,
// typed literals for time, meter and data, and text for everything else.
//
// Basic usage:
//
//	doc, err := html.Parse(r)
//	if err != nil {
//		return err
//	}
//	var triples []rdf.Triple
//	err = microdata.Extract(ctx, doc, rdf.TripleHandlerFunc(func(t rdf.Triple) error {
//		triples = append(triples, t)
//		return nil
//	}), microdata.OptBase("http://example.org/page"))
//
// Subjects are memoized per run, so items shared through itemref are
// described once and reference cycles terminate.
package microdata
