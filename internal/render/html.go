package render

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML writes the tree rooted at n as HTML. Text and attribute values are escaped.
func HTML(w io.Writer, n *Node) error {
	if err := html.Render(w, toHTMLNode(n)); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}

	return nil
}

// HTMLString renders n and returns the markup.
func HTMLString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := HTML(&buf, n); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func toHTMLNode(n *Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}

	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}

	for _, c := range n.Children {
		out.AppendChild(toHTMLNode(c))
	}

	return out
}
