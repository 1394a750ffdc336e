package convert

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2doc/document"
)

// childKind classifies a child of a block-only container.
type childKind uint8

const (
	childGap    childKind = iota // whitespace text, comments: skipped
	childInline                  // buffered into an implicit paragraph
	childBlock                   // flushes the run, walked as a block
)

// inlineTags are the elements that may start or extend an implicit paragraph.
var inlineTags = map[string]bool{
	"a":      true,
	"code":   true,
	"em":     true,
	"strong": true,
	"i":      true,
	"b":      true,
}

func classify(n *html.Node) childKind {
	switch n.Type {
	case html.ElementNode:
		if inlineTags[n.Data] {
			return childInline
		}
		return childBlock
	case html.TextNode:
		if strings.TrimSpace(n.Data) != "" {
			return childInline
		}
		return childGap
	default:
		return childGap
	}
}

// walkBlockChildren fills a block frame from a container whose source
// children mix inline content and blocks (li, blockquote, optionally the
// root). Consecutive inline-bearing children are converted one at a time
// and concatenated into a single synthesized paragraph, flushed before the
// next real block and at the end. Gaps never break a run.
func (w *walker) walkBlockChildren(n *html.Node, f *frame) {
	f.expect("reconcile block children", collectBlocks)

	var run []document.Inline
	flush := func() {
		if len(run) == 0 {
			return
		}
		f.appendBlock(document.Paragraph{Inlines: run})
		run = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch classify(c) {
		case childInline:
			inner := newFrame(collectInlines)
			w.walk(c, inner)
			run = append(run, inner.takeInlines()...)
		case childBlock:
			flush()
			w.walk(c, f)
		}
	}
	flush()
}
