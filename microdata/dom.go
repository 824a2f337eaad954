package microdata

import (
	"strings"

	"golang.org/x/net/html"
)

// attr returns the value of the un-namespaced attribute key.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

// tokens splits a whitespace-separated attribute value; absent attributes
// yield nil.
func tokens(n *html.Node, key string) []string {
	v, ok := attr(n, key)
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// textContent concatenates the data of every descendant text node in
// document order.
func textContent(n *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			continue
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return b.String()
}

// langDeclaration reads a lang or xml:lang declaration on n.
func langDeclaration(n *html.Node) (string, bool) {
	for _, a := range n.Attr {
		switch {
		case a.Namespace == "" && (a.Key == "lang" || a.Key == "xml:lang"):
			return strings.TrimSpace(a.Val), true
		case a.Namespace == "xml" && a.Key == "lang":
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}

// idIndex maps element ids to the first element carrying them.
type idIndex map[string]*html.Node

func buildIDIndex(root *html.Node) idIndex {
	index := make(idIndex)
	stack := []*html.Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isElement(cur) {
			if id, ok := attr(cur, "id"); ok && id != "" {
				if _, seen := index[id]; !seen {
					index[id] = cur
				}
			}
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return index
}

// findBase returns the href of the first <base> element in document order.
func findBase(root *html.Node) (string, bool) {
	stack := []*html.Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isElement(cur) && cur.Data == "base" && cur.Namespace == "" {
			if href, ok := attr(cur, "href"); ok {
				return strings.TrimSpace(href), true
			}
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return "", false
}
