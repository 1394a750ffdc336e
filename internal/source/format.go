package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the syntax of an input file.
type Format string

const (
	FormatAuto     Format = ""
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

var extFormats = map[string]Format{
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".xhtml":    FormatHTML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// ParseFormat accepts "html", "markdown", "md" and "" (auto), in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from the file extension.
// The second result is false for extensions this package does not read.
func FormatFromPath(path string) (Format, bool) {
	f, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Extensions lists the file extensions FormatFromPath recognizes.
func Extensions() []string {
	return []string{".html", ".htm", ".xhtml", ".md", ".markdown"}
}
