// Package pick implements interactive element selection: a highlight moves
// over candidate elements until the user clicks one or cancels.
package pick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
)

type State int

const (
	Idle State = iota
	Selecting
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	MsgStart     = "Select an element to convert to Markdown (ESC to cancel)"
	MsgCancelled = "Selection cancelled"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNoHighlight       = errors.New("nothing highlighted")
)

type Session struct {
	candidates []*html.Node
	notify     func(string)
	state      State
	current    int
	chosen     *html.Node
}

// NewSession creates an idle session over candidates. notify may be nil.
func NewSession(candidates []*html.Node, notify func(string)) *Session {
	if notify == nil {
		notify = func(string) {}
	}
	return &Session{candidates: candidates, notify: notify, current: -1}
}

// Candidates lists the elements under root that carry visible text or
// convert on their own (an image with a source, a rule), in document order.
// root itself is not a candidate.
func Candidates(root *html.Node) []*html.Node {
	out := make([]*html.Node, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if selfContained(c) || strings.TrimSpace(markup.TextContent(c)) != "" {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

func selfContained(n *html.Node) bool {
	switch markup.TagName(n) {
	case "hr":
		return true
	case "img":
		_, ok := markup.Attr(n, "src")
		return ok
	}
	return false
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Len() int {
	return len(s.candidates)
}

func (s *Session) Candidate(i int) *html.Node {
	if i < 0 || i >= len(s.candidates) {
		return nil
	}
	return s.candidates[i]
}

// Highlighted returns the element under the highlight and its index, or
// (nil, -1) when nothing is highlighted.
func (s *Session) Highlighted() (*html.Node, int) {
	if s.current < 0 {
		return nil, -1
	}
	return s.candidates[s.current], s.current
}

func (s *Session) Start() error {
	if s.state != Idle {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	s.state = Selecting
	s.chosen = nil
	s.current = -1
	if len(s.candidates) > 0 {
		s.current = 0
	}
	s.notify(MsgStart)
	return nil
}

func (s *Session) Hover(i int) error {
	if s.state != Selecting {
		return fmt.Errorf("%w: hover from %s", ErrInvalidTransition, s.state)
	}
	if i < 0 || i >= len(s.candidates) {
		return fmt.Errorf("candidate %d out of range (0-%d)", i, len(s.candidates)-1)
	}
	s.current = i
	return nil
}

// Move shifts the highlight by delta, clamped to the candidate list.
func (s *Session) Move(delta int) error {
	if len(s.candidates) == 0 {
		return ErrNoHighlight
	}
	i := s.current + delta
	if i < 0 {
		i = 0
	}
	if i >= len(s.candidates) {
		i = len(s.candidates) - 1
	}
	return s.Hover(i)
}

// Click chooses the highlighted element and removes the highlight.
func (s *Session) Click() error {
	if s.state != Selecting {
		return fmt.Errorf("%w: click from %s", ErrInvalidTransition, s.state)
	}
	if s.current < 0 {
		return ErrNoHighlight
	}
	s.chosen = s.candidates[s.current]
	s.current = -1
	s.state = Done
	return nil
}

// Escape cancels selection without choosing anything.
func (s *Session) Escape() error {
	if s.state != Selecting {
		return fmt.Errorf("%w: escape from %s", ErrInvalidTransition, s.state)
	}
	s.current = -1
	s.chosen = nil
	s.state = Idle
	s.notify(MsgCancelled)
	return nil
}

// Commit hands out the chosen element and returns the session to Idle.
func (s *Session) Commit() (*html.Node, error) {
	if s.state != Done {
		return nil, fmt.Errorf("%w: commit from %s", ErrInvalidTransition, s.state)
	}
	chosen := s.chosen
	s.chosen = nil
	s.state = Idle
	return chosen, nil
}
