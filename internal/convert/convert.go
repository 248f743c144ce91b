// Package convert rewrites a markup tree into Markdown.
//
// The conversion is a depth-first fold: text nodes pass through verbatim,
// elements contribute a prefix and suffix from a fixed rule table around the
// concatenated output of their children, and a handful of void tags produce
// their output directly. No escaping or whitespace normalization is done.
package convert

import (
	"strings"

	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
)

// Node converts the subtree rooted at n. It never fails; node kinds without a
// rule contribute the empty string.
func Node(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
	default:
		return ""
	}

	r := lookup(n)
	if r.terminal != nil {
		if out, ok := r.terminal(n); ok {
			return out
		}
	}
	prefix, suffix := r.prefix, r.suffix
	if r.wrap != nil {
		prefix, suffix = r.wrap(n)
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(Node(c))
	}
	text := b.String()
	if r.quoting {
		text = indent(text)
	}
	return prefix + text + suffix
}

// String parses serialized markup and converts the resulting body.
func String(raw string) (string, error) {
	body, err := markup.Parse(raw)
	if err != nil {
		return "", err
	}
	return Node(body), nil
}

// indent nests multi-line content one level under its list item or quote.
func indent(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", "\n  "))
}
