package convert

import (
	"fmt"
	"strings"

	markdown "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
)

type Engine string

const (
	// EngineMinimal is the rule-table fold implemented in this package.
	EngineMinimal Engine = "minimal"
	// EngineCommonMark delegates to html-to-markdown for full CommonMark output.
	EngineCommonMark Engine = "commonmark"
)

func ParseEngine(raw string) (Engine, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch Engine(s) {
	case "":
		return EngineMinimal, nil
	case EngineMinimal, EngineCommonMark:
		return Engine(s), nil
	default:
		return "", fmt.Errorf("invalid engine %q (expected minimal|commonmark)", raw)
	}
}

type Renderer struct {
	engine    Engine
	converter *markdown.Converter
}

func NewRenderer(engine Engine) *Renderer {
	r := &Renderer{engine: engine}
	if engine == EngineCommonMark {
		r.converter = markdown.NewConverter("", true, nil)
	}
	return r
}

func (r *Renderer) Engine() Engine {
	return r.engine
}

// HTMLToMarkdown converts serialized markup with the configured engine.
func (r *Renderer) HTMLToMarkdown(raw string) (string, error) {
	if r.converter == nil {
		return String(raw)
	}
	out, err := r.converter.ConvertString(raw)
	if err != nil {
		return "", fmt.Errorf("commonmark convert: %w", err)
	}
	return out, nil
}

// RenderNode serializes n to its outer markup and converts that, so the
// element is seen detached from its original parent.
func (r *Renderer) RenderNode(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	raw, err := markup.OuterHTML(n)
	if err != nil {
		return "", fmt.Errorf("serialize element: %w", err)
	}
	return r.HTMLToMarkdown(raw)
}
