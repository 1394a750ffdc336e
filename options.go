package html2doc

import (
	"log/slog"
	"slices"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	logger         *slog.Logger
	assetPath      string
	styles         []string
	cssDir         string
	lang           string
	highlight      string
	rootParagraphs bool
	langFromClass  bool
	maxInputSize   int64
}

// defaultTimeout bounds browser page loads when the context has no deadline.
const defaultTimeout = 30 * time.Second

// defaultCSSDir is where rendered pages expect named stylesheets.
const defaultCSSDir = "css"

// WithTimeout sets the PDF page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2doc: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger for debug records about skipped content,
// conversions and the browser. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithAssetPath loads named styles from {path}/styles/{name}.css first,
// falling back to the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithStyles sets the stylesheets of rendered pages, in cascade order.
// Entries are built-in style names, paths or URLs. No arguments means no
// stylesheets.
func WithStyles(styles ...string) Option {
	return func(c *Converter) {
		c.cfg.styles = slices.Clone(styles)
	}
}

// WithCSSDir sets the directory named styles are linked from ("css").
func WithCSSDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.cssDir = dir
	}
}

// WithLang sets the <html lang> attribute ("en").
func WithLang(lang string) Option {
	return func(c *Converter) {
		if lang != "" {
			c.cfg.lang = lang
		}
	}
}

// WithHighlight enables chroma highlighting with the named style.
// Empty disables it.
func WithHighlight(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = style
	}
}

// WithRootParagraphs wraps loose top-level text in paragraphs instead of
// dropping it.
func WithRootParagraphs(on bool) Option {
	return func(c *Converter) {
		c.cfg.rootParagraphs = on
	}
}

// WithLangFromClass reads code block languages from language-* classes.
func WithLangFromClass(on bool) Option {
	return func(c *Converter) {
		c.cfg.langFromClass = on
	}
}

// WithMaxInputSize sets the largest accepted input in bytes.
func WithMaxInputSize(n int64) Option {
	return func(c *Converter) {
		c.cfg.maxInputSize = n
	}
}

// withPDFConverter replaces the browser backend (tests).
func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdf = p
	}
}
