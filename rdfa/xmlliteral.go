package rdfa

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;", ">", "&gt;")
)

// XMLLiteral serializes the children of n as an rdf:XMLLiteral. Top-level
// child elements are decorated with the namespace and language declarations
// they inherit from scope, so the fragment stands on its own.
func XMLLiteral(n *html.Node, scope *Scope) rdf.Literal {
	if scope == nil {
		scope = NewScope("")
	}
	decorations := scope.decorations(usedPrefixes(n))

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			writeElement(&b, c, missing(c, decorations))
			continue
		}
		writeNode(&b, c)
	}
	return rdf.NewTypedLiteral(b.String(), rdf.RDFXMLLiteral)
}

// decorations lists the declarations a top-level element may need, in a
// stable order: prefixed namespaces, the default namespace, then xml:lang.
func (s *Scope) decorations(prefixes []string) []html.Attribute {
	var out []html.Attribute
	for _, p := range prefixes {
		if ns, ok := s.Namespace(p); ok {
			out = append(out, html.Attribute{Key: "xmlns:" + p, Val: ns})
		}
	}
	if s.DefaultNamespace != "" {
		out = append(out, html.Attribute{Key: "xmlns", Val: s.DefaultNamespace})
	}
	if s.Lang != "" {
		out = append(out, html.Attribute{Key: "xml:lang", Val: s.Lang})
	}
	return out
}

// missing returns the decorations not already declared on n.
func missing(n *html.Node, decorations []html.Attribute) []html.Attribute {
	var out []html.Attribute
	for _, d := range decorations {
		if _, ok := attr(n, d.Key); !ok {
			out = append(out, d)
		}
	}
	return out
}

// usedPrefixes collects the namespace prefixes of element and attribute
// names anywhere below n, sorted. The reserved xml and xmlns prefixes are
// never reported.
func usedPrefixes(n *html.Node) []string {
	seen := map[string]bool{}
	add := func(name string) {
		prefix, _, ok := strings.Cut(name, ":")
		if !ok || prefix == "" || prefix == "xml" || prefix == "xmlns" {
			return
		}
		seen[prefix] = true
	}

	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			add(c.Data)
			for _, a := range c.Attr {
				add(attrName(a))
			}
			walk(c)
		}
	}
	walk(n)

	prefixes := make([]string, 0, len(seen))
	for p := range seen {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

func writeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(textEscaper.Replace(n.Data))
	case html.ElementNode:
		writeElement(b, n, nil)
	case html.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	}
}

func writeElement(b *strings.Builder, n *html.Node, extra []html.Attribute) {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		writeAttr(b, attrName(a), a.Val)
	}
	for _, a := range extra {
		writeAttr(b, a.Key, a.Val)
	}
	if n.FirstChild == nil {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Data)
	b.WriteByte('>')
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(attrEscaper.Replace(value))
	b.WriteByte('"')
}
