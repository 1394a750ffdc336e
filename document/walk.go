package document

import "strings"

// Visitor is called for every node reached by Walk. Node is a Block,
// a ListItem or an Inline. Returning false skips the node's children.
type Visitor func(node any, depth int) bool

// Walk visits the body depth-first in document order.
func Walk(doc *Document, fn Visitor) {
	if doc == nil {
		return
	}
	for _, b := range doc.Body.Blocks {
		walkBlock(b, 0, fn)
	}
}

func walkBlock(b Block, depth int, fn Visitor) {
	if !fn(b, depth) {
		return
	}
	switch v := b.(type) {
	case Heading:
		walkInlines(v.Inlines, depth+1, fn)
	case Paragraph:
		walkInlines(v.Inlines, depth+1, fn)
	case CodeBlock:
		walkInlines(v.Inlines, depth+1, fn)
	case List:
		for _, item := range v.Items {
			if !fn(item, depth+1) {
				continue
			}
			for _, child := range item.Blocks {
				walkBlock(child, depth+2, fn)
			}
		}
	case Blockquote:
		for _, child := range v.Blocks {
			walkBlock(child, depth+1, fn)
		}
	}
}

func walkInlines(inlines []Inline, depth int, fn Visitor) {
	for _, in := range inlines {
		if !fn(in, depth) {
			continue
		}
		switch v := in.(type) {
		case Bold:
			walkInlines(v, depth+1, fn)
		case Italic:
			walkInlines(v, depth+1, fn)
		case Code:
			walkInlines(v, depth+1, fn)
		}
	}
}

// Stats counts the nodes of a document.
type Stats struct {
	Blocks    int
	ListItems int
	Inlines   int
	MaxDepth  int
}

// Count returns node counts for doc.
func Count(doc *Document) Stats {
	var s Stats
	Walk(doc, func(node any, depth int) bool {
		switch node.(type) {
		case Block:
			s.Blocks++
		case ListItem:
			s.ListItems++
		case Inline:
			s.Inlines++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return true
	})
	return s
}

// PlainText concatenates the text of inlines, dropping markup.
func PlainText(inlines []Inline) string {
	var b strings.Builder
	appendText(&b, inlines)
	return b.String()
}

func appendText(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			b.WriteString(string(v))
		case Bold:
			appendText(b, v)
		case Italic:
			appendText(b, v)
		case Code:
			appendText(b, v)
		}
	}
}
