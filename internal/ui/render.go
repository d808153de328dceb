package ui

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/DaanHessen/versecraft/internal/dom"
)

// screenMarkdown turns the readable part of a screen into markdown:
// headings, paragraphs, list items and images. Hitboxes are listed
// separately and are left out.
func screenMarkdown(root *dom.Node) string {
	if root == nil {
		return ""
	}
	var blocks []string
	for _, n := range dom.FindAll(root, func(n *dom.Node) bool {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.P, atom.Li, atom.Img:
			return !inHitbox(n, root)
		}
		return false
	}) {
		if b := block(n); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func block(n *dom.Node) string {
	if n.DataAtom == atom.Img {
		src := dom.AttrTrim(n, "src")
		if src == "" {
			return ""
		}
		return "![" + dom.AttrTrim(n, "alt") + "](" + src + ")"
	}
	t := strings.Join(strings.Fields(dom.Text(n)), " ")
	if t == "" {
		return ""
	}
	switch n.DataAtom {
	case atom.H1:
		return "# " + t
	case atom.H2:
		return "## " + t
	case atom.H3:
		return "### " + t
	case atom.Li:
		return "- " + t
	}
	return t
}

func isHitbox(n *dom.Node) bool {
	return dom.HasClass(n, "hitbox") || dom.AttrTrim(n, "data-action") != ""
}

func inHitbox(n, root *dom.Node) bool {
	for p := n; p != nil && p != root; p = p.Parent {
		if isHitbox(p) {
			return true
		}
	}
	return false
}
