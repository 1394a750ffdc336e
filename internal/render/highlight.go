package render

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-html2doc/document"
)

// highlighter formats code with chroma using CSS classes, so the markup
// stays small and the colors live in one <style> block.
type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// newHighlighter returns nil when name is empty.
func newHighlighter(name string) (*highlighter, error) {
	if name == "" {
		return nil, nil
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return &highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true), // we write <pre><code> ourselves
		),
	}, nil
}

// highlight reports false when chroma has no lexer for lang or fails; the
// caller then writes the plain escaped text.
func (h *highlighter) highlight(lang document.CodeLang, src string) (string, bool) {
	lexer := lexers.Get(string(lang))
	if lexer == nil {
		return "", false
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", false
	}
	return buf.String(), true
}

func (h *highlighter) css() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the stylesheet for a chroma style, for callers that
// publish it as a file instead of inlining it.
func HighlightCSS(style string) (string, error) {
	h, err := newHighlighter(style)
	if err != nil {
		return "", err
	}
	if h == nil {
		return "", nil
	}
	return h.css()
}

// HighlightStyles lists the style names accepted by Options.Highlight.
func HighlightStyles() []string {
	return styles.Names()
}
