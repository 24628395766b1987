package notes

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// RenderHTML renders the note as an HTML fragment: the title as a heading
// followed by the body read as Markdown. Raw HTML in the body is dropped.
func RenderHTML(n Note) (string, error) {
	src := "# " + n.Title + "\n\n" + n.Body + "\n"

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render note %s: %w", n.ID, err)
	}
	return buf.String(), nil
}
