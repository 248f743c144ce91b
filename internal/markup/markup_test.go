package markup

import (
	"strings"
	"testing"
)

func TestParse_ReturnsBody(t *testing.T) {
	body, err := Parse(`<p>Hi <b>there</b><!--note--></p>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if TagName(body) != "body" {
		t.Fatalf("root tag = %q, want body", TagName(body))
	}
	if got := TextContent(body); got != "Hi there" {
		t.Fatalf("TextContent = %q, want %q", got, "Hi there")
	}
}

func TestAttr_DistinguishesMissingFromEmpty(t *testing.T) {
	body, err := Parse(`<a href="">x</a><a>y</a>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	first := body.FirstChild
	second := first.NextSibling
	if v, ok := Attr(first, "HREF"); !ok || v != "" {
		t.Fatalf("Attr on empty href = (%q, %v), want (\"\", true)", v, ok)
	}
	if _, ok := Attr(second, "href"); ok {
		t.Fatalf("Attr on missing href reported present")
	}
}

func TestParentElement_StopsAtDocument(t *testing.T) {
	body, err := Parse(`<p>x</p>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	htmlEl := ParentElement(body)
	if TagName(htmlEl) != "html" {
		t.Fatalf("parent of body = %q, want html", TagName(htmlEl))
	}
	if p := ParentElement(htmlEl); p != nil {
		t.Fatalf("parent of html should be nil, got %q", p.Data)
	}
}

func TestOuterHTML_RoundTripsElement(t *testing.T) {
	body, err := Parse(`<ul><li class="a">One</li></ul>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := OuterHTML(body.FirstChild.FirstChild)
	if err != nil {
		t.Fatalf("OuterHTML: %v", err)
	}
	if out != `<li class="a">One</li>` {
		t.Fatalf("OuterHTML = %q", out)
	}
}

func TestStrip_RemovesScriptsAndComments(t *testing.T) {
	body, err := Parse(`<div>keep<script>alert(1)</script><style>p{}</style><!--c--><p>also</p></div>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	Strip(body)
	out, err := OuterHTML(body)
	if err != nil {
		t.Fatalf("OuterHTML: %v", err)
	}
	for _, bad := range []string{"<script", "<style", "<!--"} {
		if strings.Contains(out, bad) {
			t.Fatalf("expected %q to be stripped: %s", bad, out)
		}
	}
	if got := TextContent(body); got != "keepalso" {
		t.Fatalf("TextContent after strip = %q", got)
	}
}
