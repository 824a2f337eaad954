package microdata

import (
	"strings"

	"github.com/geoknoesis/rdf-extract/rdf"
)

const upperhex = "0123456789ABCDEF"

// resolvePredicate maps an itemprop token to a predicate IRI.
func (x *extractor) resolvePredicate(name string, ctx evalContext) rdf.IRI {
	if rdf.IsAbsoluteIRI(name) {
		return rdf.IRI{Value: name}
	}

	escaped := escapeName(name)
	if ctx.currentVocabulary == "" {
		return rdf.IRI{Value: strings.TrimSuffix(x.base, "#") + "#" + escaped}
	}

	if _, seen := x.subs[name]; !seen {
		x.cacheSuperproperties(name, ctx.currentVocabulary)
	}

	vocab := ctx.currentVocabulary
	if strings.HasSuffix(vocab, "#") || strings.HasSuffix(vocab, "/") {
		return rdf.IRI{Value: vocab + escaped}
	}
	return rdf.IRI{Value: vocab + "#" + escaped}
}

// cacheSuperproperties records the super-properties of name under vocab.
// The cache is keyed by name alone, so the first vocabulary that resolves a
// name decides its shadow triples for the rest of the run.
func (x *extractor) cacheSuperproperties(name, vocab string) {
	prop, ok := x.opts.Registry.Lookup(vocab, name)
	if !ok {
		x.subs[name] = nil
		return
	}
	sups := prop.Superproperties()
	if len(sups) == 0 {
		x.subs[name] = nil
		return
	}
	iris := make([]rdf.IRI, 0, len(sups))
	for _, s := range sups {
		iris = append(iris, rdf.IRI{Value: s})
	}
	x.subs[name] = iris
}

// escapeName percent-encodes every byte of name except ASCII letters,
// digits and _ . - ~ / :
func escapeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreservedNameByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreservedNameByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '_', '.', '-', '~', '/', ':':
		return true
	}
	return false
}
