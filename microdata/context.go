package microdata

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

// subjectMemory records the subject assigned to each item node during a run.
type subjectMemory map[*html.Node]rdf.Term

// evalContext is the scoped state handed down the item tree. It is passed by
// value: newCopy duplicates the scalar fields while the memory map stays
// shared by every context of the run.
type evalContext struct {
	currentType       string
	currentName       string
	currentVocabulary string
	memory            subjectMemory
}

func newEvalContext() evalContext {
	return evalContext{memory: make(subjectMemory)}
}

func (c evalContext) newCopy(itype string) evalContext {
	c.currentType = itype
	return c
}

func (c evalContext) remembered(n *html.Node) (rdf.Term, bool) {
	s, ok := c.memory[n]
	return s, ok
}

// resolveSubject returns the subject of an item node. The result is stored
// before returning so that a node reached again through itemref resolves to
// the same subject instead of being expanded twice.
func (x *extractor) resolveSubject(n *html.Node, ctx evalContext) rdf.Term {
	if s, ok := ctx.remembered(n); ok {
		return s
	}

	var subject rdf.Term
	if id, ok := attr(n, "itemid"); ok {
		id = strings.TrimSpace(id)
		if rdf.IsAbsoluteIRI(id) {
			subject = rdf.IRI{Value: rdf.ResolveIRI(x.base, id)}
		}
	}
	if subject == nil {
		subject = x.blankNodeFor(n)
	}
	ctx.memory[n] = subject
	return subject
}

// blankNodeFor hands out one blank node per node for the whole run.
func (x *extractor) blankNodeFor(n *html.Node) rdf.BlankNode {
	if b, ok := x.bnodes[n]; ok {
		return b
	}
	b := x.bnodeGen.Next()
	x.bnodes[n] = b
	return b
}
