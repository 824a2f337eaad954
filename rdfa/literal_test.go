package rdfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

// element parses src as an HTML document and returns the element with the
// given id.
func element(t *testing.T, src, id string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)

	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if v, ok := attr(n, "id"); ok && n.Type == html.ElementNode && v == id {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	require.NotNil(t, found, "no element with id %q", id)
	return found
}

func langScope(lang string) *Scope {
	s := NewScope("http://example.org/")
	s.Lang = lang
	return s
}

func TestGenerateLiteral(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		scope *Scope
		want  rdf.Literal
		more  bool
	}{
		{
			name:  "content attribute",
			src:   `<span id="n" content="Title">ignored <b>markup</b></span>`,
			scope: langScope("en"),
			want:  rdf.NewLiteral("Title", "en"),
			more:  true,
		},
		{
			name:  "content with datatype",
			src:   `<span id="n" datatype="xsd:integer" content="5">five</span>`,
			scope: langScope("en"),
			want:  rdf.NewTypedLiteral("5", rdf.XSDInteger),
			more:  true,
		},
		{
			name:  "content with empty datatype",
			src:   `<span id="n" datatype="" content="plain">x</span>`,
			scope: langScope("en"),
			want:  rdf.NewLiteral("plain", ""),
			more:  true,
		},
		{
			name:  "explicit XML literal",
			src:   `<p id="n" datatype="rdf:XMLLiteral">a <b>bold</b></p>`,
			scope: langScope(""),
			want:  rdf.NewTypedLiteral("a <b>bold</b>", rdf.RDFXMLLiteral),
			more:  false,
		},
		{
			name:  "typed text drops language",
			src:   "<span id=\"n\" datatype=\"xsd:date\">  2021-05-01\n</span>",
			scope: langScope("en"),
			want:  rdf.NewTypedLiteral("2021-05-01", rdf.XSDDate),
			more:  true,
		},
		{
			name:  "empty datatype means untyped",
			src:   `<span id="n" datatype="">  a   <i>b</i> </span>`,
			scope: langScope("en"),
			want:  rdf.NewLiteral("a b", ""),
			more:  true,
		},
		{
			name:  "child elements imply XML literal",
			src:   `<p id="n">Hello <em>world</em></p>`,
			scope: langScope("en"),
			want:  rdf.NewTypedLiteral(`Hello <em xml:lang="en">world</em>`, rdf.RDFXMLLiteral),
			more:  false,
		},
		{
			name:  "plain text is collapsed",
			src:   "<p id=\"n\">  Hello\n\t  world  </p>",
			scope: langScope("fr"),
			want:  rdf.NewLiteral("Hello world", "fr"),
			more:  true,
		},
		{
			name:  "empty element",
			src:   `<span id="n"></span>`,
			scope: nil,
			want:  rdf.NewLiteral("", ""),
			more:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, more := GenerateLiteral(element(t, tt.src, "n"), tt.scope)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.more, more)
		})
	}
}

func TestGenerateLiteralPreserveWhitespace(t *testing.T) {
	scope := langScope("")
	scope.PreserveWhitespace = true

	got, more := GenerateLiteral(element(t, "<p id=\"n\">  a\n b </p>", "n"), scope)
	assert.True(t, more)
	assert.Equal(t, "  a\n b ", got.Lexical)
}

func TestXMLLiteralDecoration(t *testing.T) {
	scope := NewScope("")
	scope.Namespaces["foaf"] = "http://xmlns.com/foaf/0.1/"
	scope.Namespaces["unused"] = "http://example.org/unused#"
	scope.DefaultNamespace = "http://www.w3.org/1999/xhtml"

	got, more := GenerateLiteral(element(t, `<div id="n"><span foaf:name="x">A</span><br></div>`, "n"), scope)
	assert.False(t, more)
	assert.Equal(t, rdf.RDFXMLLiteral, got.Datatype)
	decl := ` xmlns:foaf="http://xmlns.com/foaf/0.1/" xmlns="http://www.w3.org/1999/xhtml"`
	assert.Equal(t, `<span foaf:name="x"`+decl+`>A</span><br`+decl+`/>`, got.Lexical)
}

func TestXMLLiteralKeepsExistingDeclarations(t *testing.T) {
	scope := langScope("en")

	got := XMLLiteral(element(t, `<div id="n"><span xml:lang="de">Hallo</span> <em>x</em></div>`, "n"), scope)
	assert.Equal(t, `<span xml:lang="de">Hallo</span> <em xml:lang="en">x</em>`, got.Lexical)
}

func TestXMLLiteralEscaping(t *testing.T) {
	got := XMLLiteral(element(t, `<p id="n">a &amp; b <i title="x&quot;y">&lt;</i><!--note--></p>`, "n"), nil)
	assert.Equal(t, `a &amp; b <i title="x&quot;y">&lt;</i><!--note-->`, got.Lexical)
}

func TestEmitPropertyLiteral(t *testing.T) {
	scope := NewScope("")
	scope.Namespaces["dc"] = "http://purl.org/dc/terms/"
	scope.Vocab = "http://schema.org/"
	subject := rdf.IRI{Value: "http://example.org/doc"}

	var got []rdf.Triple
	sink := rdf.TripleHandlerFunc(func(t rdf.Triple) error {
		got = append(got, t)
		return nil
	})

	more, err := EmitPropertyLiteral(element(t, `<span id="n" property="dc:title name" content="T"></span>`, "n"), subject, scope, sink)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, []rdf.Triple{
		{S: subject, P: rdf.IRI{Value: "http://purl.org/dc/terms/title"}, O: rdf.NewLiteral("T", "")},
		{S: subject, P: rdf.IRI{Value: "http://schema.org/name"}, O: rdf.NewLiteral("T", "")},
	}, got)

	got = nil
	more, err = EmitPropertyLiteral(element(t, `<p id="n" property="dc:description">see <a href="x">this</a></p>`, "n"), subject, scope, sink)
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, got, 1)
	assert.Equal(t, `see <a href="x">this</a>`, got[0].O.(rdf.Literal).Lexical)

	more, err = EmitPropertyLiteral(element(t, `<p id="n">no property</p>`, "n"), subject, scope, sink)
	require.NoError(t, err)
	assert.True(t, more)
}

func TestEmitPropertyLiteralSinkError(t *testing.T) {
	stop := errors.New("stop")
	scope := NewScope("")
	sink := rdf.TripleHandlerFunc(func(rdf.Triple) error { return stop })

	_, err := EmitPropertyLiteral(element(t, `<span id="n" property="rdfs:label">x</span>`, "n"), rdf.BlankNode{ID: "b1"}, scope, sink)
	assert.ErrorIs(t, err, stop)
}
