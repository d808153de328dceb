// Package dom holds the live document tree the router and screen builder
// operate on. It is a thin layer over golang.org/x/net/html with browser-like
// lookup rules: template contents are inert and never matched.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ScreenAttr marks an element as a navigable screen.
const ScreenAttr = "data-screen"

// Node is an element or text node of the document.
type Node = html.Node

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: n}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) { return Parse(strings.NewReader(s)) }

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Render serializes the whole document.
func (d *Document) Render(w io.Writer) error { return html.Render(w, d.root) }

// walk visits element nodes in document order, skipping template contents.
// fn returning false stops the walk.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if !fn(c) {
			return false
		}
		if c.DataAtom == atom.Template {
			continue
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// FindAll returns every element under n matching pred, in document order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindFirst returns the first element under n matching pred.
func FindFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll searches the whole document.
func (d *Document) FindAll(pred func(*html.Node) bool) []*html.Node { return FindAll(d.root, pred) }

// ElementByID mirrors getElementById.
func (d *Document) ElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return FindFirst(d.root, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// ScreenElements returns every element carrying the screen attribute.
func (d *Document) ScreenElements() []*html.Node {
	return d.FindAll(func(n *html.Node) bool {
		_, ok := Attr(n, ScreenAttr)
		return ok
	})
}

// ScreenElement returns the first element whose screen id equals id.
func (d *Document) ScreenElement(id string) *html.Node {
	return FindFirst(d.root, func(n *html.Node) bool {
		v, ok := Attr(n, ScreenAttr)
		return ok && strings.TrimSpace(v) == id
	})
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrTrim returns the trimmed value of key, empty when absent.
func AttrTrim(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return strings.TrimSpace(v)
}

// SetAttr sets or replaces key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr drops key from n.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, have := range classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds c to n unless already present.
func AddClass(n *html.Node, c string) {
	if HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(classes(n), c), " ")))
}

// RemoveClass removes every occurrence of c from n.
func RemoveClass(n *html.Node, c string) {
	if !HasClass(n, c) {
		return
	}
	var keep []string
	for _, have := range classes(n) {
		if have != c {
			keep = append(keep, have)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			return
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			rec(k)
		}
	}
	if n != nil {
		rec(n)
	}
	return b.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if s != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// ParseFragment parses markup in a div context and returns its first
// element, or nil when the markup holds no element.
func ParseFragment(markup string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(strings.TrimSpace(markup)), ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, nil
}
