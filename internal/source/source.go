// Package source loads the live document a conversion starts from.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
)

const maxBodyBytes = 8 << 20

type Options struct {
	// FeedItem selects the 1-based entry of an RSS/Atom/JSON feed as the
	// document. Zero treats the input as HTML.
	FeedItem     int
	StripScripts bool
}

// Document is a parsed source. Root is the document node; Body its body.
type Document struct {
	Ref   string
	URL   string
	Title string
	Root  *html.Node
	Body  *html.Node
}

type Loader struct {
	client    *http.Client
	userAgent string
	stdin     io.Reader
}

func NewLoader(timeout time.Duration, userAgent string, stdin io.Reader) *Loader {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
		MaxIdleConns:      10,
		IdleConnTimeout:   30 * time.Second,
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Loader{
		client:    &http.Client{Timeout: timeout, Transport: transport},
		userAgent: userAgent,
		stdin:     stdin,
	}
}

// Load reads ref, which is "-" for stdin, an http(s) URL, or a file path.
func (l *Loader) Load(ctx context.Context, ref string, opts Options) (*Document, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("source is required")
	}
	body, effectiveURL, err := l.read(ctx, ref)
	if err != nil {
		return nil, err
	}

	if opts.FeedItem > 0 {
		body, effectiveURL, err = l.feedItem(ctx, body, effectiveURL, opts.FeedItem)
		if err != nil {
			return nil, err
		}
	}

	root, err := markup.ParseDocument(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ref, err)
	}
	if opts.StripScripts {
		markup.Strip(root)
	}
	doc := &Document{Ref: ref, URL: effectiveURL, Root: root, Body: markup.FindBody(root)}
	if doc.Body == nil {
		doc.Body = root
	}
	doc.Title = findTitle(root)
	return doc, nil
}

func (l *Loader) read(ctx context.Context, ref string) ([]byte, string, error) {
	if ref == "-" {
		data, err := io.ReadAll(io.LimitReader(l.stdin, maxBodyBytes))
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "", nil
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return l.fetch(ctx, u.String())
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", ref, err)
	}
	return data, "", nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	userAgent := l.userAgent
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "mdcopy/0.1"
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml, application/xml, application/rss+xml, application/atom+xml, */*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("request failed: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", err
	}
	effectiveURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		effectiveURL = resp.Request.URL.String()
	}
	return data, effectiveURL, nil
}

// feedItem parses body as a feed and renders entry n. A fetched HTML page
// that is not itself a feed is searched for an advertised feed link, which is
// fetched in its place.
func (l *Loader) feedItem(ctx context.Context, body []byte, pageURL string, n int) ([]byte, string, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(body))
	if err != nil && pageURL != "" {
		base, perr := url.Parse(pageURL)
		if perr != nil {
			return nil, "", perr
		}
		links := discoverFeedLinks(body, base)
		if len(links) == 0 {
			return nil, "", fmt.Errorf("parse feed: %w (no feed link on %s)", err, pageURL)
		}
		var feedBody []byte
		feedBody, pageURL, err = l.fetch(ctx, links[0])
		if err != nil {
			return nil, "", fmt.Errorf("fetch discovered feed %s: %w", links[0], err)
		}
		feed, err = parser.Parse(bytes.NewReader(feedBody))
	}
	if err != nil {
		return nil, "", fmt.Errorf("parse feed: %w", err)
	}
	out, err := feedItemMarkup(feed, n)
	return out, pageURL, err
}

// feedItemMarkup renders entry n of feed as a standalone article.
func feedItemMarkup(feed *gofeed.Feed, n int) ([]byte, error) {
	if n > len(feed.Items) {
		return nil, fmt.Errorf("feed has %d item(s); item %d does not exist", len(feed.Items), n)
	}
	item := feed.Items[n-1]
	content := strings.TrimSpace(item.Content)
	if content == "" {
		content = strings.TrimSpace(item.Description)
	}
	var b strings.Builder
	b.WriteString("<article>")
	if title := strings.TrimSpace(item.Title); title != "" {
		b.WriteString("<h1>")
		b.WriteString(html.EscapeString(title))
		b.WriteString("</h1>")
	}
	b.WriteString(content)
	b.WriteString("</article>")
	return []byte(b.String()), nil
}

func findTitle(root *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") {
			title = strings.TrimSpace(markup.TextContent(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return title
}
