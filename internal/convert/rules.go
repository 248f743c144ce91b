package convert

import (
	"strings"

	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rule is the conversion behavior of one tag. The zero rule is transparent.
type rule struct {
	prefix string
	suffix string
	// quoting rules indent every embedded line of their child text by one level.
	quoting bool
	// wrap replaces prefix and suffix for rules that depend on the element.
	wrap func(n *html.Node) (prefix, suffix string)
	// terminal produces the whole output without visiting children. A false
	// result falls through to the transparent rule.
	terminal func(n *html.Node) (string, bool)
}

var (
	emphasis = rule{prefix: "_", suffix: "_"}
	strong   = rule{prefix: "**", suffix: "**"}
	block    = rule{suffix: "\n\n"}
)

var rules = map[atom.Atom]rule{
	atom.H1:         heading(1),
	atom.H2:         heading(2),
	atom.H3:         heading(3),
	atom.H4:         heading(4),
	atom.H5:         heading(5),
	atom.H6:         heading(6),
	atom.P:          block,
	atom.Br:         {terminal: literal("\n")},
	atom.B:          strong,
	atom.Strong:     strong,
	atom.I:          emphasis,
	atom.Em:         emphasis,
	atom.A:          {wrap: link},
	atom.Ul:         block,
	atom.Ol:         block,
	atom.Li:         {prefix: "* ", suffix: "\n", quoting: true},
	atom.Pre:        {prefix: "```\n", suffix: "\n```\n\n"},
	atom.Code:       {wrap: inlineCode},
	atom.Blockquote: {prefix: "> ", suffix: "\n\n", quoting: true},
	atom.Hr:         {terminal: literal("---\n\n")},
	atom.Img:        {terminal: image},
}

func heading(level int) rule {
	return rule{prefix: strings.Repeat("#", level) + " ", suffix: "\n\n"}
}

func literal(s string) func(*html.Node) (string, bool) {
	return func(*html.Node) (string, bool) { return s, true }
}

// link wraps only anchors that carry an href; bare anchors pass through.
func link(n *html.Node) (string, string) {
	href, ok := markup.Attr(n, "href")
	if !ok {
		return "", ""
	}
	return "[", "](" + href + ")"
}

// inlineCode leaves code inside pre unwrapped since the fence already marks it.
func inlineCode(n *html.Node) (string, string) {
	if markup.TagName(n.Parent) == "pre" {
		return "", ""
	}
	return "`", "`"
}

func image(n *html.Node) (string, bool) {
	src, ok := markup.Attr(n, "src")
	if !ok {
		return "", false
	}
	alt, _ := markup.Attr(n, "alt")
	return "![" + alt + "](" + src + ")\n\n", true
}

func lookup(n *html.Node) rule {
	a := n.DataAtom
	if a == 0 {
		a = atom.Lookup([]byte(strings.ToLower(n.Data)))
	}
	return rules[a]
}
