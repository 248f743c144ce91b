package convert

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var previewer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Preview renders Markdown back to HTML, which shows how a converted clip
// will read once pasted into a Markdown-aware editor.
func Preview(md string) (string, error) {
	var buf bytes.Buffer
	if err := previewer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("preview: %w", err)
	}
	return buf.String(), nil
}
