package microdata

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/geoknoesis/rdf-extract/rdf"
)

// topLevelItems lists, in document order, every element that starts an item
// without being a property of another one.
func topLevelItems(root *html.Node) []*html.Node {
	var items []*html.Node
	stack := []*html.Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isElement(cur) && hasAttr(cur, "itemscope") && !hasAttr(cur, "itemprop") {
			items = append(items, cur)
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return items
}

// itemProperties collects the property elements of item: its descendants
// and itemref targets, without crossing into nested items.
func (x *extractor) itemProperties(item *html.Node) []*html.Node {
	queue := elementChildren(item)
	for _, id := range tokens(item, "itemref") {
		target, ok := x.ids[id]
		if !ok {
			x.log.Debug("itemref target not found", "id", id)
			continue
		}
		queue = append(queue, target)
	}

	visited := map[*html.Node]bool{item: true}
	var props []*html.Node
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		if !hasAttr(cur, "itemscope") {
			queue = append(queue, elementChildren(cur)...)
		}
		if len(tokens(cur, "itemprop")) > 0 || len(tokens(cur, "itemprop-reverse")) > 0 {
			props = append(props, cur)
		}
	}
	return props
}

// step is one property token of one property element.
type step struct {
	node    *html.Node
	name    string
	reverse bool
}

// frame is an item whose properties are being walked.
type frame struct {
	subject rdf.Term
	ctx     evalContext
	itype   string
	steps   []step
	next    int
}

// generateTriples walks item and every item nested under it, returning the
// subject of item. Nested items are walked on an explicit stack: a nested
// item is finished before the property list of its parent resumes.
func (x *extractor) generateTriples(item *html.Node, ctx evalContext) (rdf.Term, error) {
	root, err := x.beginItem(item, ctx)
	if err != nil {
		return nil, err
	}

	stack := []*frame{root}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.steps) {
			stack = stack[:len(stack)-1]
			continue
		}
		s := f.steps[f.next]
		f.next++

		pending, err := x.processStep(f, s)
		if err != nil {
			return nil, err
		}
		if pending == nil {
			continue
		}
		if x.opts.MaxDepth > 0 && len(stack) >= x.opts.MaxDepth {
			return nil, fmt.Errorf("item nesting deeper than %d: %w", x.opts.MaxDepth, rdf.ErrDepthExceeded)
		}
		child, err := x.beginItem(pending.node, pending.ctx)
		if err != nil {
			return nil, err
		}
		stack = append(stack, child)
	}
	return root.subject, nil
}

// beginItem resolves the subject of item, emits its types and prepares the
// frame that walks its properties.
func (x *extractor) beginItem(item *html.Node, ctx evalContext) (*frame, error) {
	subject := x.resolveSubject(item, ctx)

	var types []string
	for _, t := range tokens(item, "itemtype") {
		if rdf.IsAbsoluteIRI(t) {
			types = append(types, t)
		}
	}
	for _, t := range types {
		if err := x.emit(rdf.Triple{S: subject, P: rdf.RDFType, O: rdf.IRI{Value: t}}); err != nil {
			return nil, err
		}
	}

	_, hasItemtype := attr(item, "itemtype")
	var itype string
	switch {
	case len(types) > 0:
		itype = types[0]
		ctx.currentName = ""
	case !hasItemtype:
		itype = ctx.currentType
	}

	if vocab := x.vocabularyFor(itype); vocab != "" {
		ctx.currentVocabulary = vocab
		x.log.Debug("item vocabulary", "type", itype, "vocabulary", vocab)
	} else if hasItemtype {
		ctx.currentVocabulary = ""
	}

	f := &frame{subject: subject, ctx: ctx, itype: itype}
	for _, prop := range x.itemProperties(item) {
		for _, name := range tokens(prop, "itemprop") {
			f.steps = append(f.steps, step{node: prop, name: name})
		}
		for _, name := range tokens(prop, "itemprop-reverse") {
			f.steps = append(f.steps, step{node: prop, name: name, reverse: true})
		}
	}
	return f, nil
}

// processStep emits the triples of one property token and returns the nested
// item it reached, if that item still has to be walked.
func (x *extractor) processStep(f *frame, s step) (*pendingItem, error) {
	ctx := f.ctx.newCopy(f.itype)
	predicate := x.resolvePredicate(s.name, ctx)
	ctx.currentName = predicate.Value

	object, pending := x.resolveValue(s.node, ctx)
	if object == nil {
		return nil, nil
	}
	if s.reverse && rdf.IsLiteral(object) {
		return pending, nil
	}

	predicates := append([]rdf.IRI{predicate}, x.subs[s.name]...)
	for _, p := range predicates {
		t := rdf.Triple{S: f.subject, P: p, O: object}
		if s.reverse {
			t = rdf.Triple{S: object, P: p, O: f.subject}
		}
		if err := x.emit(t); err != nil {
			return nil, err
		}
	}
	return pending, nil
}

// vocabularyFor derives the vocabulary of an item type: the matching registry
// entry, or a namespace cut from the type IRI itself.
func (x *extractor) vocabularyFor(itype string) string {
	if itype == "" {
		return ""
	}
	if key, ok := x.opts.Registry.MatchVocabulary(itype); ok {
		return key
	}
	return vocabularyFromType(itype)
}

func vocabularyFromType(itype string) string {
	if before, fragment, ok := strings.Cut(itype, "#"); ok && fragment != "" {
		return before + "#"
	}

	rest := itype
	if i := strings.Index(rest, "#"); i >= 0 {
		rest = rest[:i]
	}
	if !hasPathOrQuery(rest) {
		if strings.HasSuffix(itype, "/") {
			return itype
		}
		return itype + "/"
	}
	i := strings.LastIndex(itype, "/")
	if i < 0 {
		return itype + "/"
	}
	return itype[:i] + "/"
}

// hasPathOrQuery reports whether an absolute IRI has anything after its
// authority.
func hasPathOrQuery(iri string) bool {
	scheme, rest, ok := strings.Cut(iri, ":")
	if !ok || scheme == "" {
		return true
	}
	if authority, found := strings.CutPrefix(rest, "//"); found {
		return strings.ContainsAny(authority, "/?")
	}
	return rest != ""
}
