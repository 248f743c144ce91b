package cli

import (
	"testing"

	"github.com/odysseus0/mdcopy/internal/markup"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	if err != nil {
		t.Fatalf("parseID: %v", err)
	}
	if id != 42 {
		t.Fatalf("unexpected id: %d", id)
	}
	if _, err := parseID("0"); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestFallback(t *testing.T) {
	if got := fallback("value", "x"); got != "value" {
		t.Fatalf("fallback non-empty: %q", got)
	}
	if got := fallback("   ", "x"); got != "x" {
		t.Fatalf("fallback empty: %q", got)
	}
}

func TestCompactText(t *testing.T) {
	if got := compactText("  a \n\t b  ", 0); got != "a b" {
		t.Fatalf("compactText collapse: %q", got)
	}
	if got := compactText("abcdefghij", 6); got != "abcde..." {
		t.Fatalf("compactText truncate: %q", got)
	}
}

func TestElementLabel(t *testing.T) {
	body, err := markup.Parse(`<div id=" main " class="post  wide">x</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	div := body.FirstChild
	if got := elementLabel(div); got != "div#main.post.wide" {
		t.Fatalf("elementLabel(div) = %q", got)
	}
	if got := elementLabel(div.FirstChild); got != "#text" {
		t.Fatalf("elementLabel(text) = %q", got)
	}
	if got := elementLabel(nil); got != "-" {
		t.Fatalf("elementLabel(nil) = %q", got)
	}
}
