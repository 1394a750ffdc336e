package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alnah/go-html2doc/document"
)

// DefaultLang is the page language when Options.Lang is empty.
const DefaultLang = "en"

// Options controls the page shell around the rendered blocks.
type Options struct {
	// Title overrides doc.Meta.Title. No <title> is written when both are empty.
	Title string

	// Lang is the <html lang> attribute. Defaults to DefaultLang.
	Lang string

	// Stylesheets are hrefs written as <link rel="stylesheet">, in order.
	Stylesheets []string

	// InlineCSS is written inside a <style> element after the links.
	// Used when the page is printed and external files cannot be fetched.
	InlineCSS string

	// Highlight names a chroma style. When set, code blocks with a known
	// language are emitted as class-based highlighted markup and the style's
	// CSS is added to the <style> element.
	Highlight string
}

// ToString renders doc as a complete HTML page.
func ToString(doc *document.Document, opts Options) (string, error) {
	var b strings.Builder
	if err := HTML(&b, doc, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HTML writes doc to w as a complete HTML page.
func HTML(w io.Writer, doc *document.Document, opts Options) error {
	if doc == nil {
		doc = &document.Document{}
	}

	hl, err := newHighlighter(opts.Highlight)
	if err != nil {
		return err
	}

	css := opts.InlineCSS
	if hl != nil {
		hlCSS, err := hl.css()
		if err != nil {
			return err
		}
		css = joinCSS(css, hlCSS)
	}

	title := opts.Title
	if title == "" {
		title = doc.Meta.Title
	}
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}

	bw := &blockWriter{w: w, hl: hl}
	bw.str("<!doctype html>\n")
	bw.str(`<html lang="` + html.EscapeString(lang) + "\">\n")
	bw.head(title, opts.Stylesheets, css)
	bw.str("<body>\n<main>\n<article>\n")
	bw.blocks(doc.Body.Blocks)
	bw.str("</article>\n</main>\n</body>\n</html>\n")

	return bw.result()
}

// Fragment writes blocks without the page shell and without highlighting.
func Fragment(w io.Writer, blocks []document.Block) error {
	bw := &blockWriter{w: w}
	bw.blocks(blocks)
	return bw.result()
}

func joinCSS(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// blockWriter keeps the first write error and turns later writes into no-ops,
// so the tree walk does not check errors at every tag.
type blockWriter struct {
	w   io.Writer
	hl  *highlighter
	err error
}

func (bw *blockWriter) str(s string) {
	if bw.err != nil {
		return
	}
	_, bw.err = io.WriteString(bw.w, s)
}

func (bw *blockWriter) text(s string) {
	bw.str(html.EscapeString(s))
}

func (bw *blockWriter) result() error {
	if bw.err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, bw.err)
	}
	return nil
}

func (bw *blockWriter) head(title string, stylesheets []string, css string) {
	bw.str("<head>\n")
	bw.str("  <meta charset=\"utf-8\">\n")
	if title != "" {
		bw.str("  <title>")
		bw.text(title)
		bw.str("</title>\n")
	}
	for _, href := range stylesheets {
		bw.str(`  <link rel="stylesheet" href="` + html.EscapeString(href) + "\">\n")
	}
	if css != "" {
		// </style> inside css would end the element early.
		bw.str("  <style>\n")
		bw.str(strings.ReplaceAll(css, "</style", `<\/style`))
		bw.str("\n  </style>\n")
	}
	bw.str("</head>\n")
}

func (bw *blockWriter) blocks(blocks []document.Block) {
	for _, b := range blocks {
		bw.block(b)
	}
}

func (bw *blockWriter) block(b document.Block) {
	switch v := b.(type) {
	case document.Heading:
		tag := v.Level.String()
		bw.str("<" + tag + ">")
		bw.inlines(v.Inlines)
		bw.str("</" + tag + ">\n")
	case document.Paragraph:
		bw.str("<p>")
		bw.inlines(v.Inlines)
		bw.str("</p>\n")
	case document.List:
		tag := v.Kind.Tag()
		bw.str("<" + tag + ">\n")
		for _, item := range v.Items {
			bw.str("<li>\n")
			bw.blocks(item.Blocks)
			bw.str("</li>\n")
		}
		bw.str("</" + tag + ">\n")
	case document.Blockquote:
		bw.str("<blockquote>\n")
		bw.blocks(v.Blocks)
		bw.str("</blockquote>\n")
	case document.ThematicBreak:
		bw.str("<hr/>\n")
	case document.CodeBlock:
		bw.codeBlock(v)
	default:
		panic(fmt.Sprintf("render: unknown block %T", b))
	}
}

func (bw *blockWriter) codeBlock(cb document.CodeBlock) {
	bw.str("<pre><code")
	if cb.Lang.Known() {
		bw.str(` class="language-` + html.EscapeString(string(cb.Lang)) + `"`)
	}
	bw.str(">")

	inlines := codeContent(cb.Inlines)
	if bw.hl != nil && cb.Lang.Known() {
		if out, ok := bw.hl.highlight(cb.Lang, document.PlainText(inlines)); ok {
			bw.str(out)
			bw.str("</code></pre>\n")
			return
		}
	}
	bw.inlines(inlines)
	bw.str("</code></pre>\n")
}

// codeContent drops a Code wrapper that is the block's only inline. The
// converter produces one for <pre><code>…</code></pre>, and the renderer
// already writes that <code>.
func codeContent(inlines []document.Inline) []document.Inline {
	if len(inlines) == 1 {
		if c, ok := inlines[0].(document.Code); ok {
			return c
		}
	}
	return inlines
}

func (bw *blockWriter) inlines(inlines []document.Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case document.Text:
			bw.text(string(v))
		case document.Bold:
			bw.str("<strong>")
			bw.inlines(v)
			bw.str("</strong>")
		case document.Italic:
			bw.str("<em>")
			bw.inlines(v)
			bw.str("</em>")
		case document.Code:
			bw.str("<code>")
			bw.inlines(v)
			bw.str("</code>")
		default:
			panic(fmt.Sprintf("render: unknown inline %T", in))
		}
	}
}
