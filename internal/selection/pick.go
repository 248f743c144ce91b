package selection

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Pick returns the first element under root matching a CSS selector. It
// stands in for the element a pointer click lands on.
func Pick(root *html.Node, selector string) (*html.Node, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("%w: selector is empty", ErrInvalidSelector)
	}
	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	match := goquery.NewDocumentFromNode(root).FindMatcher(compiled).First()
	if match.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return match.Get(0), nil
}
