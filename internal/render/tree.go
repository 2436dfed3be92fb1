// Package render derives the page view tree from store state and
// serializes it as HTML or terminal text.
package render

import "strings"

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

// Node is a view tree node. A node with an empty Tag is a text node.
type Node struct {
	Tag      string
	Text     string
	Attrs    []Attr
	Children []*Node
}

// --- Node builder helpers ---

// El creates an element node with the given children.
func El(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// TextNode creates a text node.
func TextNode(text string) *Node {
	return &Node{Text: text}
}

// Attr sets an attribute, replacing an earlier value with the same key.
func (n *Node) Attr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}

	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})

	return n
}

// Class sets the class attribute from the given names.
func (n *Node) Class(names ...string) *Node {
	return n.Attr("class", strs.JoinClasses(names...))
}

// Child appends child nodes and returns the parent for chaining.
func (n *Node) Child(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Get returns the value of attribute key.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

// HasClass reports whether the node's class attribute contains name.
func (n *Node) HasClass(name string) bool {
	classes, _ := n.Get("class")

	for _, c := range strings.Fields(classes) {
		if c == name {
			return true
		}
	}

	return false
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Find returns every node in the tree, n included, for which match is true,
// in document order.
func (n *Node) Find(match func(*Node) bool) []*Node {
	var out []*Node

	var walk func(*Node)
	walk = func(cur *Node) {
		if match(cur) {
			out = append(out, cur)
		}

		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)

	return out
}

// TextContent concatenates the text of n and all its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder

	for _, t := range n.Find((*Node).IsText) {
		sb.WriteString(t.Text)
	}

	return sb.String()
}
