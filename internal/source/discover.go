package source

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/odysseus0/mdcopy/internal/markup"
	"golang.org/x/net/html"
)

// discoverFeedLinks returns the absolute URLs of the alternate feed links a
// page advertises, in document order and without duplicates.
func discoverFeedLinks(body []byte, base *url.URL) []string {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	if href := findBaseHref(root); href != "" {
		if u, err := url.Parse(href); err == nil {
			base = base.ResolveReference(u)
		}
	}

	out := make([]string, 0)
	seen := map[string]struct{}{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if abs, ok := feedLink(n, base); ok {
			if _, dup := seen[abs]; !dup {
				seen[abs] = struct{}{}
				out = append(out, abs)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func feedLink(n *html.Node, base *url.URL) (string, bool) {
	if markup.TagName(n) != "link" {
		return "", false
	}
	rel, _ := markup.Attr(n, "rel")
	if !hasToken(rel, "alternate") {
		return "", false
	}
	href, _ := markup.Attr(n, "href")
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	typeAttr, _ := markup.Attr(n, "type")
	typeAttr = strings.ToLower(strings.TrimSpace(typeAttr))
	if !isFeedType(typeAttr, href) {
		return "", false
	}
	// WordPress advertises its REST API as application/json.
	if typeAttr == "application/json" && strings.Contains(strings.ToLower(href), "/wp-json/") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

func findBaseHref(root *html.Node) string {
	var href string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if href != "" {
			return
		}
		if markup.TagName(n) == "base" {
			if v, ok := markup.Attr(n, "href"); ok && strings.TrimSpace(v) != "" {
				href = strings.TrimSpace(v)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return href
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(strings.ToLower(list)) {
		if t == token {
			return true
		}
	}
	return false
}

func isFeedType(typeAttr, href string) bool {
	switch typeAttr {
	case "application/rss+xml", "application/atom+xml", "application/feed+json", "application/json", "application/xml", "text/xml":
		return true
	case "":
	default:
		return strings.Contains(typeAttr, "rss") || strings.Contains(typeAttr, "atom") || strings.Contains(typeAttr, "feed")
	}

	h := strings.ToLower(href)
	p := h
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		p = strings.ToLower(u.Path)
	}
	switch path.Ext(p) {
	case ".rss", ".atom", ".xml", ".json":
		return true
	}
	return strings.Contains(h, "/feed") || strings.Contains(h, "rss") || strings.Contains(h, "atom")
}
