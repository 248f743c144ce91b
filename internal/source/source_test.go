package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/odysseus0/mdcopy/internal/markup"
)

func newTestLoader(stdin string) *Loader {
	return NewLoader(5*time.Second, "mdcopy-test/1.0", strings.NewReader(stdin))
}

func TestLoad_FileStripsScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(`<html><head><title> Page </title></head><body><p>Hi</p><script>x()</script></body></html>`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := newTestLoader("").Load(context.Background(), path, Options{StripScripts: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Title != "Page" {
		t.Fatalf("Title = %q", doc.Title)
	}
	if markup.TagName(doc.Body) != "body" {
		t.Fatalf("Body = <%s>", markup.TagName(doc.Body))
	}
	if got := markup.TextContent(doc.Body); got != "Hi" {
		t.Fatalf("body text = %q", got)
	}
}

func TestLoad_Stdin(t *testing.T) {
	doc, err := newTestLoader(`<h1>From stdin</h1>`).Load(context.Background(), "-", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := markup.TextContent(doc.Body); got != "From stdin" {
		t.Fatalf("body text = %q", got)
	}
}

func TestLoad_URLSendsUserAgentAndRejectsErrors(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<p>remote</p>`))
	}))
	defer srv.Close()

	loader := newTestLoader("")
	doc, err := loader.Load(context.Background(), srv.URL+"/page", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotUA != "mdcopy-test/1.0" {
		t.Fatalf("User-Agent = %q", gotUA)
	}
	if doc.URL != srv.URL+"/page" {
		t.Fatalf("URL = %q", doc.URL)
	}
	if got := markup.TextContent(doc.Body); got != "remote" {
		t.Fatalf("body text = %q", got)
	}

	if _, err := loader.Load(context.Background(), srv.URL+"/missing", Options{}); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoad_FeedItem(t *testing.T) {
	const feedXML = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Test Feed</title><link>https://example.com</link><description>desc</description>
<item>
  <guid>item-1</guid>
  <title>First &amp; best</title>
  <description><![CDATA[<p>Hello <b>feed</b></p>]]></description>
</item>
</channel></rss>`
	path := filepath.Join(t.TempDir(), "feed.xml")
	if err := os.WriteFile(path, []byte(feedXML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loader := newTestLoader("")
	doc, err := loader.Load(context.Background(), path, Options{FeedItem: 1})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	article := doc.Body.FirstChild
	if markup.TagName(article) != "article" {
		t.Fatalf("first body child = <%s>, want article", markup.TagName(article))
	}
	if got := markup.TextContent(article); got != "First & bestHello feed" {
		t.Fatalf("article text = %q", got)
	}

	if _, err := loader.Load(context.Background(), path, Options{FeedItem: 2}); err == nil {
		t.Fatalf("expected error for missing feed item")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := newTestLoader("").Load(context.Background(), filepath.Join(t.TempDir(), "nope.html"), Options{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := newTestLoader("").Load(context.Background(), " ", Options{}); err == nil {
		t.Fatalf("expected error for empty source")
	}
}
