package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// DefaultMaxInputSize bounds a single input (8MB).
const DefaultMaxInputSize int64 = 8 << 20

// Page is a loaded input, ready for conversion.
type Page struct {
	// Root is the selected content node (the whole tree without a selector).
	Root *html.Node

	// Title is the document's <title>, when the input had one.
	Title string

	// Fragment is true when the input was not a full HTML document.
	Fragment bool
}

// Loader reads HTML or Markdown input into a Page.
type Loader struct {
	markdown MarkdownConverter
	maxSize  int64
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMarkdownConverter replaces the goldmark front end.
func WithMarkdownConverter(c MarkdownConverter) LoaderOption {
	return func(l *Loader) { l.markdown = c }
}

// WithMaxInputSize sets the largest accepted input in bytes.
// Values <= 0 keep the default.
func WithMaxInputSize(n int64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// NewLoader returns a Loader using goldmark for Markdown input.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		markdown: NewGoldmarkConverter(),
		maxSize:  DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Read loads at most the configured size from r and calls Load.
func (l *Loader) Read(ctx context.Context, r io.Reader, format Format, selector string) (*Page, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, l.maxSize)
	}
	return l.Load(ctx, string(data), format, selector)
}

// Load parses content in the given format and applies selector.
// FormatAuto is treated as HTML.
func (l *Loader) Load(ctx context.Context, content string, format Format, selector string) (*Page, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyInput
	}
	if int64(len(content)) > l.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(content), l.maxSize)
	}

	switch format {
	case FormatAuto, FormatHTML:
	case FormatMarkdown:
		converted, err := l.markdown.ToHTML(ctx, content)
		if err != nil {
			return nil, err
		}
		content = converted
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, fragment, err := ParseHTML(content)
	if err != nil {
		return nil, err
	}
	title := Title(root)

	selected, err := Select(root, selector)
	if err != nil {
		return nil, err
	}

	return &Page{Root: selected, Title: title, Fragment: fragment}, nil
}
