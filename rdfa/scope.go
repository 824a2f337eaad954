package rdfa

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

// builtinPrefixes are available in every scope without a declaration.
var builtinPrefixes = map[string]string{
	"rdf":  rdf.RDFNamespace,
	"rdfs": rdf.RDFSNamespace,
	"xsd":  rdf.XSDNamespace,
	"xml":  rdf.XMLNamespace + "#",
}

// Scope is the evaluation state in force at an element: the language, the
// namespace declarations and the whitespace policy inherited from its
// ancestors.
type Scope struct {
	// Lang is the language in force; empty means none.
	Lang string
	// DefaultNamespace is the inherited xmlns declaration.
	DefaultNamespace string
	// Namespaces maps declared prefixes to namespace IRIs.
	Namespaces map[string]string
	// Vocab is the vocabulary IRI used for bare property terms.
	Vocab string
	// PreserveWhitespace keeps text literals verbatim instead of collapsing
	// runs of whitespace.
	PreserveWhitespace bool
	// Base is the document base IRI.
	Base string
}

// NewScope returns the root scope of a document.
func NewScope(base string) *Scope {
	return &Scope{Base: base, Namespaces: map[string]string{}}
}

// Child returns the scope in force at n, a child element of the element s
// belongs to. s is not modified.
func (s *Scope) Child(n *html.Node) *Scope {
	child := *s
	if n == nil || n.Type != html.ElementNode {
		return &child
	}

	copied := false
	for _, a := range n.Attr {
		name := attrName(a)
		switch {
		case name == "xmlns":
			child.DefaultNamespace = a.Val
		case strings.HasPrefix(name, "xmlns:"):
			if !copied {
				child.Namespaces = make(map[string]string, len(s.Namespaces)+1)
				for k, v := range s.Namespaces {
					child.Namespaces[k] = v
				}
				copied = true
			}
			child.Namespaces[strings.ToLower(name[len("xmlns:"):])] = a.Val
		case name == "vocab":
			child.Vocab = strings.TrimSpace(a.Val)
		}
	}
	if lang, ok := langOf(n); ok {
		child.Lang = lang
	}
	return &child
}

// Namespace returns the IRI bound to prefix, declared or built in.
func (s *Scope) Namespace(prefix string) (string, bool) {
	if ns, ok := s.Namespaces[prefix]; ok {
		return ns, true
	}
	ns, ok := builtinPrefixes[prefix]
	return ns, ok
}

// ExpandCURIE expands a CURIE, an absolute IRI or a vocabulary term into an
// IRI. Safe CURIEs in square brackets are accepted.
func (s *Scope) ExpandCURIE(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		value = value[1 : len(value)-1]
	}
	if value == "" {
		return "", false
	}

	if prefix, reference, ok := strings.Cut(value, ":"); ok {
		if ns, known := s.Namespace(strings.ToLower(prefix)); known && !strings.HasPrefix(reference, "//") {
			return ns + reference, true
		}
		if rdf.IsAbsoluteIRI(value) {
			return value, true
		}
		return "", false
	}
	if s.Vocab != "" {
		return s.Vocab + value, true
	}
	return "", false
}

// langOf reads the language declared on n. xml:lang wins over lang.
func langOf(n *html.Node) (string, bool) {
	var lang string
	var found bool
	for _, a := range n.Attr {
		switch attrName(a) {
		case "xml:lang":
			return strings.TrimSpace(a.Val), true
		case "lang":
			lang, found = strings.TrimSpace(a.Val), true
		}
	}
	return lang, found
}

func attrName(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if attrName(a) == name {
			return a.Val, true
		}
	}
	return "", false
}
