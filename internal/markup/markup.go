// Package markup holds the small set of tree helpers shared by the converter
// and the selection resolver. Nodes are plain *html.Node values produced by
// golang.org/x/net/html; nothing here mutates a tree except Strip.
package markup

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse parses a serialized fragment the way a browser DOMParser would and
// returns the body element of the resulting document.
func Parse(raw string) (*html.Node, error) {
	doc, err := ParseDocument(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if body := FindBody(doc); body != nil {
		return body, nil
	}
	return doc, nil
}

func ParseDocument(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

func FindBody(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "body") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := FindBody(c); b != nil {
			return b
		}
	}
	return nil
}

// TagName returns the lower-cased tag name, or "" for non-element nodes.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// ParentElement mirrors the DOM parentElement property: the parent when it is
// an element, nil otherwise (the parent of <html> is the document).
func ParentElement(n *html.Node) *html.Node {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil
	}
	return n.Parent
}

// Attr looks up an attribute by name. The boolean distinguishes a missing
// attribute from one that is present with an empty value.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent concatenates every descendant text node in document order.
// Comments and other character data are not included.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode, html.DocumentNode:
			writeText(b, c)
		}
	}
}

// OuterHTML serializes n including its own start and end tags.
func OuterHTML(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
