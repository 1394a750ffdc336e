// Package convert turns a parsed HTML tree into a document.Document.
//
// The walk is a recursive transducer over *html.Node. Every construct that
// changes what is being collected (blocks, inlines or list items) gets a fresh
// frame, walks its children into it, and appends the finished value to the
// caller's frame. Document order is append order.
//
// Unexpected input never fails the conversion: unknown elements are
// transparent and text with nowhere to go is dropped. A frame used in the
// wrong mode is a bug in this package and panics with *ContractError.
package convert

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2doc/document"
	"github.com/alnah/go-html2doc/internal/logging"
)

// Options tunes a conversion.
type Options struct {
	// WrapRootInlines applies the list-item/blockquote reconciliation rule to
	// the top level, so loose text there becomes implicit paragraphs instead
	// of being dropped. It only changes how a container root is read: the
	// document node, or an element the walker treats as transparent (div,
	// body, article...). A root the walker builds (ul, blockquote, h2...) is
	// still dispatched, and an inline root becomes one paragraph.
	WrapRootInlines bool

	// LangFromClass sets CodeBlock.Lang from a language-* class on the <pre>
	// or its sole <code> child. Off, every code block is LangUnknown.
	LangFromClass bool

	// Logger receives debug records for skipped content. Nil discards.
	Logger *slog.Logger
}

// Convert walks root and returns the finished document.
// A nil root yields an empty body.
func Convert(root *html.Node, meta document.Meta, opts Options) *document.Document {
	w := &walker{log: logging.OrDiscard(opts.Logger), langFromClass: opts.LangFromClass}

	top := newFrame(collectBlocks)
	if root != nil {
		if opts.WrapRootInlines {
			w.walkRoot(root, top)
		} else {
			w.walk(root, top)
		}
	}

	return &document.Document{
		Meta: meta,
		Body: document.Body{Blocks: top.takeBlocks()},
	}
}

// blockTags are the elements element() builds into blocks.
var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "hr": true, "pre": true,
}

type walker struct {
	log           *slog.Logger
	langFromClass bool
}

func (w *walker) walk(n *html.Node, f *frame) {
	switch n.Type {
	case html.TextNode:
		w.text(n, f)
		return
	case html.ElementNode:
		if w.element(n, f) {
			return
		}
	}
	w.walkChildren(n, f)
}

// walkRoot starts a wrapping walk. Container roots have their children
// reconciled; other roots go through the normal dispatch.
func (w *walker) walkRoot(n *html.Node, f *frame) {
	switch {
	case n.Type == html.DocumentNode,
		n.Type == html.ElementNode && !blockTags[n.Data] && !inlineTags[n.Data]:
		w.walkBlockChildren(n, f)
	case classify(n) == childInline:
		inner := newFrame(collectInlines)
		w.walk(n, inner)
		if inlines := inner.takeInlines(); len(inlines) > 0 {
			f.appendBlock(document.Paragraph{Inlines: inlines})
		}
	default:
		w.walk(n, f)
	}
}

func (w *walker) walkChildren(n *html.Node, f *frame) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, f)
	}
}

// element dispatches on the tag. It reports false when the element is
// transparent and the caller should walk its children.
func (w *walker) element(n *html.Node, f *frame) bool {
	switch tag := n.Data; tag {
	case "p":
		w.paragraph(n, f)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.heading(n, f, tag)
	case "ul":
		w.list(n, f, document.Unordered)
	case "ol":
		w.list(n, f, document.Ordered)
	case "li":
		w.listItem(n, f)
	case "blockquote":
		w.blockquote(n, f)
	case "hr":
		w.thematicBreak(n, f)
	case "pre":
		w.codeBlock(n, f)
	case "em", "i", "strong", "b", "code":
		w.emphasis(n, f, tag)
	case "div":
		// Transparent for now: no grouping block exists in the model.
		return false
	default:
		return false
	}
	return true
}

// unwrapped walks n's children under the caller's frame when n cannot be
// built in the current mode. Content survives, the element's own wrapping
// does not.
func (w *walker) unwrapped(n *html.Node, f *frame) {
	w.log.Debug("convert: element wrapping dropped", "tag", n.Data, "mode", f.mode)
	w.walkChildren(n, f)
}

// inlineChildren collects n's children as inlines in a fresh frame.
func (w *walker) inlineChildren(n *html.Node) []document.Inline {
	inner := newFrame(collectInlines)
	w.walkChildren(n, inner)
	return inner.takeInlines()
}

func (w *walker) paragraph(n *html.Node, f *frame) {
	if f.mode != collectBlocks {
		w.unwrapped(n, f)
		return
	}
	f.appendBlock(document.Paragraph{Inlines: w.inlineChildren(n)})
}

func (w *walker) heading(n *html.Node, f *frame, tag string) {
	level, ok := document.HeadingLevelFromTag(tag)
	if !ok {
		panic("convert: unexpected heading tag " + tag)
	}
	if f.mode != collectBlocks {
		w.unwrapped(n, f)
		return
	}
	f.appendBlock(document.Heading{Level: level, Inlines: w.inlineChildren(n)})
}

func (w *walker) list(n *html.Node, f *frame, kind document.ListKind) {
	if f.mode != collectBlocks {
		w.unwrapped(n, f)
		return
	}
	inner := newFrame(collectListItems)
	w.walkChildren(n, inner)
	f.appendBlock(document.List{Kind: kind, Items: inner.takeItems()})
}

func (w *walker) listItem(n *html.Node, f *frame) {
	if f.mode != collectListItems {
		w.unwrapped(n, f)
		return
	}
	inner := newFrame(collectBlocks)
	w.walkBlockChildren(n, inner)
	f.appendItem(document.ListItem{Blocks: inner.takeBlocks()})
}

func (w *walker) blockquote(n *html.Node, f *frame) {
	if f.mode != collectBlocks {
		w.unwrapped(n, f)
		return
	}
	inner := newFrame(collectBlocks)
	w.walkBlockChildren(n, inner)
	f.appendBlock(document.Blockquote{Blocks: inner.takeBlocks()})
}

func (w *walker) thematicBreak(n *html.Node, f *frame) {
	if f.mode != collectBlocks {
		w.log.Debug("convert: thematic break dropped", "mode", f.mode)
		return
	}
	f.appendBlock(document.ThematicBreak{})
}

func (w *walker) codeBlock(n *html.Node, f *frame) {
	if f.mode != collectBlocks {
		w.unwrapped(n, f)
		return
	}
	lang := document.LangUnknown
	if w.langFromClass {
		lang = codeLang(n)
	}
	f.appendBlock(document.CodeBlock{
		Lang:    lang,
		Inlines: w.inlineChildren(n),
	})
}

// codeLang looks for a language-* or lang-* class on pre, then on a <code>
// element that is pre's only element child.
func codeLang(pre *html.Node) document.CodeLang {
	if lang := classLang(pre); lang.Known() {
		return lang
	}
	var code *html.Node
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if code != nil || c.Data != "code" {
			return document.LangUnknown
		}
		code = c
	}
	if code == nil {
		return document.LangUnknown
	}
	return classLang(code)
}

func classLang(n *html.Node) document.CodeLang {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(attr.Val) {
			if strings.HasPrefix(cls, "language-") || strings.HasPrefix(cls, "lang-") {
				return document.ParseCodeLang(cls)
			}
		}
	}
	return document.LangUnknown
}

func (w *walker) emphasis(n *html.Node, f *frame, tag string) {
	if f.mode != collectInlines {
		w.unwrapped(n, f)
		return
	}
	inner := w.inlineChildren(n)
	switch tag {
	case "em", "i":
		f.appendInlines(document.Italic(inner))
	case "strong", "b":
		f.appendInlines(document.Bold(inner))
	case "code":
		f.appendInlines(document.Code(inner))
	default:
		panic("convert: unexpected emphasis tag " + tag)
	}
}

func (w *walker) text(n *html.Node, f *frame) {
	if f.mode != collectInlines {
		if strings.TrimSpace(n.Data) != "" {
			w.log.Debug("convert: text dropped outside inline context", "mode", f.mode, "len", len(n.Data))
		}
		return
	}
	f.appendInlines(document.Text(n.Data))
}
