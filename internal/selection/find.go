package selection

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

type textPos struct {
	node   *html.Node
	offset int
}

// textIndex is the whitespace-collapsed text of a subtree with, for every
// byte of it, the text node and byte offset it came from.
type textIndex struct {
	text strings.Builder
	pos  []textPos
}

func buildTextIndex(root *html.Node) *textIndex {
	idx := &textIndex{}
	inSpace := true
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for off := 0; off < len(n.Data); {
				r, size := utf8.DecodeRuneInString(n.Data[off:])
				if unicode.IsSpace(r) {
					if !inSpace {
						idx.text.WriteByte(' ')
						idx.pos = append(idx.pos, textPos{node: n, offset: off})
					}
					inSpace = true
				} else {
					idx.text.WriteString(n.Data[off : off+size])
					for i := 0; i < size; i++ {
						idx.pos = append(idx.pos, textPos{node: n, offset: off + i})
					}
					inSpace = false
				}
				off += size
			}
			return
		}
		if n.Type != html.ElementNode && n.Type != html.DocumentNode {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return idx
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// FindText selects the first occurrence of text under root. Runs of
// whitespace in both the needle and the document match each other.
func FindText(root *html.Node, text string) (*Selection, error) {
	needle := collapseSpace(text)
	if needle == "" {
		return nil, ErrNoSelection
	}
	idx := buildTextIndex(root)
	start := strings.Index(idx.text.String(), needle)
	if start < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTextNotFound, needle)
	}
	last := idx.pos[start+len(needle)-1]
	first := idx.pos[start]
	return New(Range{
		StartContainer: first.node,
		StartOffset:    first.offset,
		EndContainer:   last.node,
		EndOffset:      last.offset + 1,
	}), nil
}
