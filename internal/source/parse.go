package source

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses content as a full document when it starts with a doctype
// or <html> tag, and as a body fragment otherwise. A byte order mark and
// leading comments are skipped for that check. Fragments are placed under a
// DocumentNode so both shapes walk the same way.
func ParseHTML(content string) (root *html.Node, fragment bool, err error) {
	content = strings.TrimPrefix(content, "\ufeff")

	if isFullDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return doc, false, nil
	}

	// Body context keeps the parser from adding <html><head><body>.
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrParse, err)
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// isFullDocument reports whether the first markup in content, past
// whitespace and comments, is a doctype or an <html> tag.
func isFullDocument(content string) bool {
	s := content
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if !strings.HasPrefix(s, "<!--") {
			break
		}
		end := strings.Index(s[len("<!--"):], "-->")
		if end < 0 {
			return false
		}
		s = s[len("<!--")+end+len("-->"):]
	}

	head := strings.ToLower(s[:min(len(s), len("<!doctype"))])
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// FileURL returns the file:// URL of path, made absolute first.
// Used as the default origin of documents read from disk.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(abs), // Windows backslashes
	}
	return u.String(), nil
}
