package selection

import (
	"strings"

	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
)

// Resolve returns the element to convert for a selection: the common
// ancestor of its first range, lifted to an element, then widened through
// every parent whose trimmed text is identical to it.
//
// Siblings that contribute only whitespace do not stop the climb, so a
// selection can resolve to a much larger container than the selected text.
func Resolve(sel *Selection) (*html.Node, error) {
	if sel.RangeCount() == 0 || sel.IsCollapsed() {
		return nil, ErrNoSelection
	}
	r, err := sel.RangeAt(0)
	if err != nil {
		return nil, err
	}
	node := ResolveNode(r.CommonAncestor())
	if node == nil {
		return nil, ErrNoSelection
	}

	text := strings.TrimSpace(markup.TextContent(node))
	for {
		parent := markup.ParentElement(node)
		if parent == nil {
			break
		}
		parentText := strings.TrimSpace(markup.TextContent(parent))
		if parentText != text {
			break
		}
		node = parent
	}
	return node, nil
}

// ResolveNode lifts a non-element node to its parent element. Elements are
// returned unchanged; nil is returned when there is no enclosing element.
func ResolveNode(n *html.Node) *html.Node {
	if n == nil || markup.IsElement(n) {
		return n
	}
	return markup.ParentElement(n)
}
