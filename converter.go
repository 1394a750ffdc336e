package html2doc

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2doc/document"
	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/convert"
	"github.com/alnah/go-html2doc/internal/fileutil"
	"github.com/alnah/go-html2doc/internal/logging"
	"github.com/alnah/go-html2doc/internal/render"
	"github.com/alnah/go-html2doc/internal/source"
)

// Compile-time interface implementation checks.
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// Converter runs the load, convert and render pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is not safe for concurrent use; use one per goroutine or a
// ConverterPool.
type Converter struct {
	cfg    converterConfig
	log    *slog.Logger
	loader *source.Loader
	assets assets.AssetLoader
	pdf    pdfConverter
}

// NewConverter creates a Converter with default configuration: the built-in
// reset, main and blog stylesheets linked from css/, English, no highlighting.
// Returns an error if a style or the highlight style cannot be resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			styles:  slices.Clone(assets.DefaultStyles),
			cssDir:  defaultCSSDir,
			lang:    render.DefaultLang,
		},
		assets: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = logging.OrDiscard(c.cfg.logger)

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assets = resolver
	}

	// Fail at construction rather than on the first PDF. File path styles
	// are read when a PDF is printed.
	named := slices.DeleteFunc(slices.Clone(c.cfg.styles), assets.IsExternal)
	if _, err := assets.LoadStyles(c.assets, named); err != nil {
		return nil, fmt.Errorf("loading styles: %w", err)
	}

	if c.cfg.highlight != "" {
		if _, err := render.HighlightCSS(c.cfg.highlight); err != nil {
			return nil, err
		}
	}

	c.loader = source.NewLoader(source.WithMaxInputSize(c.cfg.maxInputSize))

	if c.pdf == nil {
		c.pdf = newRodConverter(c.cfg.timeout, c.log)
	}

	return c, nil
}

// Convert loads input, converts it and renders the requested outputs.
// The context is used for cancellation of Markdown conversion and PDF
// rendering. A converter bug surfaces as ErrContractViolation and never
// returns a partial result.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, panicError(r)
		}
	}()

	page, err := c.load(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}

	root, err := c.contentRoot(page, input.Selector)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}

	meta := document.Meta{
		OriginURL: input.OriginURL,
		Title:     cmp.Or(input.Title, page.Title),
	}
	doc := c.convert(root, meta)

	res := &ConvertResult{Document: doc}

	pageHTML, err := render.ToString(doc, c.renderOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	res.HTML = []byte(pageHTML)

	if input.Markdown {
		md, err := render.Markdown(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarkdownRender, err)
		}
		res.Markdown = []byte(md)
	}

	if input.PDF {
		printable, err := c.printablePage(doc)
		if err != nil {
			return nil, err
		}
		pdf, err := c.pdf.ToPDF(ctx, printable)
		if err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
		res.PDF = pdf
	}

	return res, nil
}

// ConvertNode converts an already parsed tree. A nil root yields an empty
// document.
func (c *Converter) ConvertNode(root *html.Node, meta document.Meta) (doc *document.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, panicError(r)
		}
	}()
	return c.convert(root, meta), nil
}

// Render writes doc as an HTML page with the converter's page options.
// A hand-built document holding nil nodes fails with ErrHTMLRender.
func (c *Converter) Render(doc *document.Document) (page []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("%w: %v", ErrHTMLRender, r)
		}
	}()

	out, err := render.ToString(doc, c.renderOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	return []byte(out), nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

func (c *Converter) convert(root *html.Node, meta document.Meta) *document.Document {
	doc := convert.Convert(root, meta, convert.Options{
		WrapRootInlines: c.cfg.rootParagraphs,
		LangFromClass:   c.cfg.langFromClass,
		Logger:          c.log,
	})

	stats := document.Count(doc)
	c.log.Debug("converted",
		"origin", meta.OriginURL,
		"blocks", stats.Blocks,
		"items", stats.ListItems,
		"inlines", stats.Inlines,
		"depth", stats.MaxDepth)
	return doc
}

func (c *Converter) load(ctx context.Context, input Input) (*source.Page, error) {
	if input.Reader != nil {
		return c.loader.Read(ctx, input.Reader, input.Format, input.Selector)
	}
	return c.loader.Load(ctx, input.Content, input.Format, input.Selector)
}

// contentRoot returns the node to convert. With root paragraphs on, a full
// page without a selector is converted from its <body>, so loose body text
// is wrapped like fragment text.
func (c *Converter) contentRoot(page *source.Page, selector string) (*html.Node, error) {
	if !c.cfg.rootParagraphs || page.Fragment || selector != "" {
		return page.Root, nil
	}
	return source.Select(page.Root, "body")
}

func (c *Converter) renderOptions() render.Options {
	return render.Options{
		Lang:        c.cfg.lang,
		Stylesheets: assets.Hrefs(c.cfg.cssDir, c.cfg.styles),
		Highlight:   c.cfg.highlight,
	}
}

// printablePage renders doc for the browser. The page is loaded from a temp
// file, so named and file path styles are inlined and only URL stylesheets
// stay linked.
func (c *Converter) printablePage(doc *document.Document) (string, error) {
	css, err := assets.LoadStyles(c.assets, c.cfg.styles)
	if err != nil {
		return "", fmt.Errorf("loading styles: %w", err)
	}

	var links []string
	for _, s := range c.cfg.styles {
		if fileutil.IsURL(s) {
			links = append(links, s)
		}
	}

	out, err := render.ToString(doc, render.Options{
		Lang:        c.cfg.lang,
		Stylesheets: links,
		InlineCSS:   css,
		Highlight:   c.cfg.highlight,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	return out, nil
}

// panicError turns a recovered value into an error. Contract violations from
// the converter keep their detail under ErrContractViolation.
func panicError(r any) error {
	if e, ok := r.(error); ok {
		var ce *convert.ContractError
		if errors.As(e, &ce) {
			return fmt.Errorf("%w: %v", ErrContractViolation, ce)
		}
	}
	return fmt.Errorf("internal error: %v", r)
}
