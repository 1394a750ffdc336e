package source

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Select returns the first node under root matching selector. An empty
// selector returns root unchanged.
func Select(root *html.Node, selector string) (*html.Node, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return root, nil
	}

	// goquery silently matches nothing on a bad selector; compile it here to
	// report the mistake.
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}

	sel := goquery.NewDocumentFromNode(root).FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}
	return sel.Get(0), nil
}

// Title returns the trimmed text of the first <title> under root, or "".
func Title(root *html.Node) string {
	if root == nil {
		return ""
	}
	text := goquery.NewDocumentFromNode(root).Find("title").First().Text()
	return strings.Join(strings.Fields(text), " ")
}
