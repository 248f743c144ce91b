package markup

import (
	"strings"

	"golang.org/x/net/html"
)

var strippedTags = map[string]struct{}{
	"noscript": {},
	"script":   {},
	"style":    {},
	"template": {},
}

// Strip removes script-like subtrees and comments from the tree rooted at n.
// Their character data would otherwise leak into converted text.
func Strip(n *html.Node) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.CommentNode:
			n.RemoveChild(c)
		case html.ElementNode:
			if _, blocked := strippedTags[strings.ToLower(strings.TrimSpace(c.Data))]; blocked {
				n.RemoveChild(c)
			} else {
				Strip(c)
			}
		default:
			Strip(c)
		}
		c = next
	}
}
