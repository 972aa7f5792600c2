package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FindAll returns the descendants of root matching selector, in document
// order. root itself is never matched.
func FindAll(root *html.Node, selector string) []*html.Node {
	if root == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes
}

// FindFirst returns the first descendant of root matching selector, or nil.
func FindFirst(root *html.Node, selector string) *html.Node {
	nodes := FindAll(root, selector)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// TextContent returns the concatenated text of n's subtree.
func TextContent(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}

// GetAttr returns the value of attribute key and whether it is present.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key, adding it when absent.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes every occurrence of attribute key.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// HasClass reports whether n's class list contains token.
func HasClass(n *html.Node, token string) bool {
	class, _ := GetAttr(n, "class")
	for _, c := range strings.Fields(class) {
		if c == token {
			return true
		}
	}
	return false
}

// AppendClass adds token to the end of n's class list. Unlike goquery's
// AddClass it keeps duplicates, so a block already classed "python" still
// gets a second token.
func AppendClass(n *html.Node, token string) {
	class, ok := GetAttr(n, "class")
	if !ok || strings.TrimSpace(class) == "" {
		SetAttr(n, "class", token)
		return
	}
	SetAttr(n, "class", class+" "+token)
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceNode puts replacement where old is and detaches old.
// replacement is detached from its current parent first.
func ReplaceNode(old, replacement *html.Node) {
	Detach(replacement)
	if old.Parent == nil {
		return
	}
	old.Parent.InsertBefore(replacement, old)
	old.Parent.RemoveChild(old)
}

// ReplaceWithChildren moves n's children into n's place and detaches n.
// A parentless n only loses its children.
func ReplaceWithChildren(n *html.Node) {
	parent := n.Parent
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		if parent != nil {
			parent.InsertBefore(c, n)
		}
		c = next
	}
	Detach(n)
}

// Prepend inserts nodes as the first children of parent, keeping their order.
func Prepend(parent *html.Node, nodes []*html.Node) {
	first := parent.FirstChild
	for _, n := range nodes {
		Detach(n)
		parent.InsertBefore(n, first)
	}
}

// AppendAll appends nodes as the last children of parent, keeping their order.
func AppendAll(parent *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		Detach(n)
		parent.AppendChild(n)
	}
}

// Contains reports whether n is root or a descendant of root.
func Contains(root, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}
