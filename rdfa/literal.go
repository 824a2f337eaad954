package rdfa

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

var whitespaceRun = regexp.MustCompile(`[\r \n\t]+`)

// GenerateLiteral builds the literal value of an element carrying a property
// attribute. The second result reports whether the caller should keep
// processing the element's descendants; it is false once the subtree has
// been consumed as an XML literal.
//
// The value is taken from, in order: the content attribute; the element's
// markup when the datatype is rdf:XMLLiteral; its text when any other
// datatype (including an empty, explicitly untyped one) is given; its markup
// when it has child elements; its text otherwise.
func GenerateLiteral(n *html.Node, scope *Scope) (rdf.Literal, bool) {
	if scope == nil {
		scope = NewScope("")
	}
	datatype, hasDatatype := attr(n, "datatype")
	var datatypeIRI string
	if hasDatatype {
		datatypeIRI, _ = scope.ExpandCURIE(datatype)
	}

	if content, ok := attr(n, "content"); ok {
		switch {
		case datatypeIRI != "":
			return rdf.NewTypedLiteral(content, rdf.IRI{Value: datatypeIRI}), true
		case hasDatatype:
			return rdf.NewLiteral(content, ""), true
		default:
			return rdf.NewLiteral(content, scope.Lang), true
		}
	}

	if hasDatatype {
		if datatypeIRI == rdf.RDFXMLLiteral.Value {
			return XMLLiteral(n, scope), false
		}
		text := scope.normalizeText(textContent(n))
		if datatypeIRI == "" {
			return rdf.NewLiteral(text, ""), true
		}
		return rdf.NewTypedLiteral(text, rdf.IRI{Value: datatypeIRI}), true
	}

	if hasElementChild(n) {
		return XMLLiteral(n, scope), false
	}
	return rdf.NewLiteral(scope.normalizeText(textContent(n)), scope.Lang), true
}

// EmitPropertyLiteral emits one triple per term of n's property attribute,
// all sharing the literal generated for n. It returns the continue flag of
// GenerateLiteral; elements without a property attribute yield true.
func EmitPropertyLiteral(n *html.Node, subject rdf.Term, scope *Scope, sink rdf.TripleHandler) (bool, error) {
	value, ok := attr(n, "property")
	if !ok {
		return true, nil
	}
	terms := strings.Fields(value)
	if len(terms) == 0 {
		return true, nil
	}

	literal, more := GenerateLiteral(n, scope)
	for _, term := range terms {
		predicate, ok := scope.ExpandCURIE(term)
		if !ok {
			continue
		}
		if err := sink.Handle(rdf.Triple{S: subject, P: rdf.IRI{Value: predicate}, O: literal}); err != nil {
			return false, err
		}
	}
	return more, nil
}

func (s *Scope) normalizeText(text string) string {
	if s.PreserveWhitespace {
		return text
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}
