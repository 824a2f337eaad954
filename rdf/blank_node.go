package rdf

import "strconv"

// BlankNodeGenerator hands out sequential blank node labels ("b1", "b2", ...).
// An optional prefix keeps labels from separate runs apart when their output is
// merged. Not safe for concurrent use.
type BlankNodeGenerator struct {
	prefix  string
	counter int
}

// NewBlankNodeGenerator creates a generator whose labels start with prefix
// followed by "b". An empty prefix yields plain "b1", "b2", ...
func NewBlankNodeGenerator(prefix string) *BlankNodeGenerator {
	return &BlankNodeGenerator{prefix: prefix}
}

// Next generates the next blank node.
func (g *BlankNodeGenerator) Next() BlankNode {
	g.counter++
	return BlankNode{ID: g.prefix + "b" + strconv.Itoa(g.counter)}
}

// Count reports how many blank nodes have been generated.
func (g *BlankNodeGenerator) Count() int { return g.counter }
