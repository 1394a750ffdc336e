// Package document defines the typed document model produced by the converter
// and consumed by the renderer.
//
// A Document is a tree of blocks and inlines. Containers typed to hold blocks
// (Body, ListItem, Blockquote) never hold bare text or inline markup; inline
// content always lives inside a Paragraph, Heading or CodeBlock.
//
// Values are built once during a conversion and treated as read-only after.
// There is no mutation API: updating content means converting again.
package document

// Document is the root of a converted page.
type Document struct {
	Meta Meta
	Body Body
}

// Meta holds information about where the content came from.
// The converter stores it but never interprets it.
type Meta struct {
	OriginURL string
	Title     string // optional, rendered as <title> when set
}

// Body is the ordered top-level content of a document.
type Body struct {
	Blocks []Block
}

// Block is a structural unit. Implemented by Heading, Paragraph, List,
// Blockquote, ThematicBreak and CodeBlock.
type Block interface {
	isBlock()
}

// Inline is a span-level unit. Implemented by Text, Bold, Italic and Code.
type Inline interface {
	isInline()
}

// Heading is a section title of a given level.
type Heading struct {
	Level   HeadingLevel
	Inlines []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

// List is an ordered or unordered sequence of items.
type List struct {
	Kind  ListKind
	Items []ListItem
}

// ListItem holds blocks, even when the source markup put text directly
// inside the <li>.
type ListItem struct {
	Blocks []Block
}

// Blockquote holds quoted blocks.
type Blockquote struct {
	Blocks []Block
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// CodeBlock is preformatted code.
type CodeBlock struct {
	Lang    CodeLang
	Inlines []Inline
}

func (Heading) isBlock()       {}
func (Paragraph) isBlock()     {}
func (List) isBlock()          {}
func (Blockquote) isBlock()    {}
func (ThematicBreak) isBlock() {}
func (CodeBlock) isBlock()     {}

type (
	// Text is raw, unescaped character data.
	Text string
	// Bold is strongly emphasized content.
	Bold []Inline
	// Italic is emphasized content.
	Italic []Inline
	// Code is inline code.
	Code []Inline
)

func (Text) isInline()   {}
func (Bold) isInline()   {}
func (Italic) isInline() {}
func (Code) isInline()   {}
