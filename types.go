package html2doc

import (
	"io"

	"github.com/alnah/go-html2doc/document"
	"github.com/alnah/go-html2doc/internal/source"
)

// Format names the syntax of Input.Content.
type Format = source.Format

// Input formats.
const (
	FormatAuto     = source.FormatAuto // treated as HTML
	FormatHTML     = source.FormatHTML
	FormatMarkdown = source.FormatMarkdown
)

// ParseFormat accepts "", "auto", "html", "htm", "markdown" and "md".
func ParseFormat(s string) (Format, error) {
	return source.ParseFormat(s)
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	return source.FormatFromPath(path)
}

// Input is one page to convert.
type Input struct {
	// Content is the page source: a full HTML document, an HTML fragment,
	// or Markdown when Format is FormatMarkdown.
	Content string
	Format  Format

	// Reader, when set, is read instead of Content. Reading stops one byte
	// past the converter's max input size.
	Reader io.Reader

	// Selector picks the content node with a CSS selector, e.g. "article".
	// Empty converts the whole page.
	Selector string

	// OriginURL is stored in the document's metadata, never fetched.
	OriginURL string

	// Title overrides the page's <title>.
	Title string

	Markdown bool // also render Markdown
	PDF      bool // also render PDF (starts a browser on first use)
}

// ConvertResult holds every output of one conversion.
type ConvertResult struct {
	Document *document.Document
	HTML     []byte
	Markdown []byte // nil unless Input.Markdown
	PDF      []byte // nil unless Input.PDF
}
