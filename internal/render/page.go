package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var layout = template.Must(template.ParseFS(templateFS, "templates/base.layout.html"))

// PageData is the data passed to the base layout.
type PageData struct {
	Title string
	Body  template.HTML
}

// Page writes a complete HTML document with root as its body. Nothing is
// written to w if rendering fails.
func Page(w io.Writer, title string, root *Node) error {
	body, err := HTMLString(root)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)

	// body comes from HTML, which escapes every text and attribute value.
	data := PageData{Title: title, Body: template.HTML(body)}

	if err := layout.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("failed to execute layout: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	return nil
}
