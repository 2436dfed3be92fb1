package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MinTextWidth is the narrowest width Text lays out.
const MinTextWidth = 20

var inlineTags = map[string]bool{
	"a":      true,
	"span":   true,
	"img":    true,
	"button": true,
	"form":   true,
}

// Text writes the tree as plain terminal text no wider than width display
// columns. Cards are framed in boxes and links show their target.
func Text(w io.Writer, root *Node, width int) error {
	if _, err := io.WriteString(w, TextString(root, width)); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}

	return nil
}

// TextString returns the terminal rendering of root.
func TextString(root *Node, width int) string {
	if width < MinTextWidth {
		width = MinTextWidth
	}

	lines := blockLines(root, width)

	return strings.Join(lines, "\n") + "\n"
}

func isInline(n *Node) bool {
	return n.IsText() || inlineTags[n.Tag]
}

// blockLines lays out a block element: runs of inline children become
// wrapped paragraphs, block children are laid out recursively.
func blockLines(n *Node, width int) []string {
	if isInline(n) {
		return wrap(inlineText(n), width)
	}

	switch {
	case n.HasClass(CardClass):
		return boxLines(n, width)
	case n.Tag == "li":
		return bullet(childLines(n, width-2))
	case n.Tag == "nav":
		return append(childLines(n, width), strings.Repeat("─", width))
	}

	return childLines(n, width)
}

func childLines(n *Node, width int) []string {
	var (
		lines []string
		run   []string
	)

	flush := func() {
		if text := strs.NormalizeWhitespace(strings.Join(run, " ")); text != "" {
			lines = append(lines, wrap(text, width)...)
		}

		run = run[:0]
	}

	for _, c := range n.Children {
		if isInline(c) {
			run = append(run, inlineText(c))
			continue
		}

		flush()
		lines = append(lines, blockLines(c, width)...)
	}
	flush()

	return lines
}

func inlineText(n *Node) string {
	if n.IsText() {
		return strs.NormalizeWhitespace(n.Text)
	}

	switch n.Tag {
	case "img":
		alt, _ := n.Get("alt")
		return "[" + alt + "]"
	case "button":
		return "[" + strs.NormalizeWhitespace(n.TextContent()) + "]"
	}

	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if t := inlineText(c); t != "" {
			parts = append(parts, t)
		}
	}

	text := strings.Join(parts, " ")

	if n.Tag == "a" {
		if href, ok := n.Get("href"); ok {
			text += " <" + href + ">"
		}
	}

	return text
}

func boxLines(n *Node, width int) []string {
	inner := width - 4
	content := childLines(n, inner)

	lines := make([]string, 0, len(content)+3)
	lines = append(lines, "┌"+strings.Repeat("─", width-2)+"┐")

	for _, line := range content {
		lines = append(lines, "│ "+runewidth.FillRight(line, inner)+" │")
	}

	lines = append(lines, "└"+strings.Repeat("─", width-2)+"┘", "")

	return lines
}

func bullet(lines []string) []string {
	for i := range lines {
		if i == 0 {
			lines[i] = "• " + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}

	return lines
}

// wrap breaks text into lines of at most width display columns, splitting
// on spaces. Words wider than a line are truncated.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		cur   strings.Builder
		used  int
	)

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if ww > width {
			word = runewidth.Truncate(word, width, "…")
			ww = runewidth.StringWidth(word)
		}

		switch {
		case used == 0:
			cur.WriteString(word)
			used = ww
		case used+1+ww <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			used += 1 + ww
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(word)
			used = ww
		}
	}

	return append(lines, cur.String())
}
