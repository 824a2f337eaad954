package microdata

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/geoknoesis/rdf-extract/rdf"
)

// uriAttributes names the attribute carrying the value of URI-valued
// elements.
var uriAttributes = map[string]string{
	"a":      "href",
	"area":   "href",
	"link":   "href",
	"audio":  "src",
	"embed":  "src",
	"iframe": "src",
	"img":    "src",
	"source": "src",
	"track":  "src",
	"video":  "src",
	"object": "data",
}

// pendingItem is a nested item whose subject has been assigned but whose
// properties have not been walked yet.
type pendingItem struct {
	node *html.Node
	ctx  evalContext
}

// resolveValue computes the object of a property node. A nil term means the
// node yields no value. For an item that has not been seen before the subject
// is returned together with the pending work for its properties.
func (x *extractor) resolveValue(n *html.Node, ctx evalContext) (rdf.Term, *pendingItem) {
	if hasAttr(n, "itemscope") {
		if s, ok := ctx.remembered(n); ok {
			return s, nil
		}
		return x.resolveSubject(n, ctx), &pendingItem{node: n, ctx: ctx}
	}

	if key, ok := uriAttributes[n.Data]; ok {
		v, ok := attr(n, key)
		if !ok {
			return nil, nil
		}
		return rdf.IRI{Value: rdf.ResolveIRI(x.base, strings.TrimSpace(v))}, nil
	}

	switch n.Data {
	case "meta":
		if content, ok := attr(n, "content"); ok {
			return rdf.NewLiteral(content, x.language(n)), nil
		}
	case "time":
		if dt, ok := attr(n, "datetime"); ok {
			if datatype, ok := ClassifyTemporal(dt); ok {
				return rdf.NewTypedLiteral(dt, datatype), nil
			}
			return rdf.NewLiteral(dt, ""), nil
		}
	case "meter", "data":
		v, ok := attr(n, "value")
		if !ok {
			return rdf.NewLiteral("", ""), nil
		}
		return numericLiteral(v), nil
	}

	return rdf.NewLiteral(textContent(n), x.language(n)), nil
}

// numericLiteral types v as xsd:integer or xsd:double when it parses as one,
// keeping the lexical form as written.
func numericLiteral(v string) rdf.Literal {
	trimmed := strings.TrimSpace(v)
	if _, ok := new(big.Int).SetString(trimmed, 10); ok {
		return rdf.NewTypedLiteral(v, rdf.XSDInteger)
	}
	if isHexNumber(trimmed) {
		return rdf.NewLiteral(v, "")
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return rdf.NewTypedLiteral(v, rdf.XSDDouble)
	}
	return rdf.NewLiteral(v, "")
}

// isHexNumber reports a 0x-prefixed number, which strconv accepts but
// xsd:double does not.
func isHexNumber(v string) bool {
	v = strings.TrimLeft(v, "+-")
	return len(v) > 1 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X')
}

// language returns the language in scope for n: the nearest lang or xml:lang
// declaration on n or an ancestor, else the default language. Tags are
// emitted in their BCP 47 form ("en_US" becomes "en-US"); tags that do not
// parse are dropped.
func (x *extractor) language(n *html.Node) string {
	lang, found := "", false
	for cur := n; cur != nil && !found; cur = cur.Parent {
		if isElement(cur) {
			lang, found = langDeclaration(cur)
		}
	}
	if !found {
		lang = x.opts.DefaultLang
	}
	if lang == "" {
		return ""
	}
	tag, err := language.Raw.Parse(lang)
	if err != nil {
		x.log.Debug("dropping invalid language tag", "lang", lang, "error", err)
		return ""
	}
	return tag.String()
}
