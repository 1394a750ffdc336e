// Package render writes a document.Document back out as canonical HTML.
//
// The mapping is fixed and one-to-one:
//
//	Heading       → <h1>..<h6>
//	Paragraph     → <p>
//	List          → <ul> / <ol> with one <li> per item
//	Blockquote    → <blockquote>
//	ThematicBreak → <hr/>
//	CodeBlock     → <pre><code>
//	Bold / Italic / Code → <strong> / <em> / <code>
//
// Text is always escaped. Whitespace is only ever emitted between block
// tags, never inside an inline context. Parsing the output and converting it
// again yields the same document for any document the converter produced.
// Other documents come back in converter shape: a CodeBlock's inlines are
// wrapped in a single Code (the <code> the renderer writes), and adjacent
// Text values are merged. Rendering that result gives the same bytes again.
//
// HTML wraps the blocks in a page shell (doctype, head with stylesheet links,
// body/main/article). Fragment writes the blocks alone. Markdown converts the
// fragment with html-to-markdown.
//
// Rendering is pure: the same document and options always produce the same
// bytes.
package render
