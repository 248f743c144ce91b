// Package selection decides which element of a document a user means to
// convert, either from a text range selection or from a picked element.
package selection

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

var (
	ErrNoSelection     = errors.New("no selection")
	ErrTextNotFound    = errors.New("text not found")
	ErrNoMatch         = errors.New("no matching element")
	ErrInvalidSelector = errors.New("invalid selector")
)

// Range is a contiguous span of a document between two boundary points.
// Offsets index bytes of a text container or children of an element.
type Range struct {
	StartContainer *html.Node
	StartOffset    int
	EndContainer   *html.Node
	EndOffset      int
}

func (r Range) Collapsed() bool {
	return r.StartContainer == r.EndContainer && r.StartOffset == r.EndOffset
}

// CommonAncestor returns the deepest node containing both boundary
// containers. A container counts as its own ancestor.
func (r Range) CommonAncestor() *html.Node {
	if r.StartContainer == nil || r.EndContainer == nil {
		return nil
	}
	ancestors := make(map[*html.Node]struct{})
	for n := r.StartContainer; n != nil; n = n.Parent {
		ancestors[n] = struct{}{}
	}
	for n := r.EndContainer; n != nil; n = n.Parent {
		if _, ok := ancestors[n]; ok {
			return n
		}
	}
	return nil
}

// Selection is a snapshot of the ranges a user has selected.
type Selection struct {
	ranges []Range
}

func New(ranges ...Range) *Selection {
	return &Selection{ranges: append([]Range(nil), ranges...)}
}

func (s *Selection) RangeCount() int {
	if s == nil {
		return 0
	}
	return len(s.ranges)
}

func (s *Selection) RangeAt(i int) (Range, error) {
	if i < 0 || i >= s.RangeCount() {
		return Range{}, fmt.Errorf("range index %d out of bounds (count %d)", i, s.RangeCount())
	}
	return s.ranges[i], nil
}

// IsCollapsed reports whether the primary range, the first one, covers no
// content. A selection without ranges is collapsed.
func (s *Selection) IsCollapsed() bool {
	if s.RangeCount() == 0 {
		return true
	}
	return s.ranges[0].Collapsed()
}

func (s *Selection) RemoveAllRanges() {
	if s != nil {
		s.ranges = nil
	}
}
