package html2doc

// Notes:
// - PDF output is tested through fakePDF; the real browser path lives in
//   html2pdf_integration_test.go behind the integration build tag.
// - Contract violations cannot be provoked through valid input (that would be
//   a converter bug), so panicError is tested directly.

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/net/html"

	"github.com/alnah/go-html2doc/document"
	"github.com/alnah/go-html2doc/internal/convert"
)

type fakePDF struct {
	got    string
	err    error
	closed bool
}

func (f *fakePDF) ToPDF(_ context.Context, htmlContent string) ([]byte, error) {
	f.got = htmlContent
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func (f *fakePDF) Close() error {
	f.closed = true
	return nil
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *fakePDF) {
	t.Helper()

	fake := &fakePDF{}
	conv, err := NewConverter(append([]Option{withPDFConverter(fake)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv, fake
}

func para(s string) document.Paragraph {
	return document.Paragraph{Inlines: []document.Inline{document.Text(s)}}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"no styles", []Option{WithStyles()}, nil},
		{"external styles", []Option{WithStyles("https://cdn.example.com/a.css", "./local.css")}, nil},
		{"unknown style", []Option{WithStyles("nope")}, ErrStyleNotFound},
		{"bad style name", []Option{WithStyles("main.css")}, ErrInvalidStyleName},
		{"highlight", []Option{WithHighlight("monokai")}, nil},
		{"unknown highlight", []Option{WithHighlight("no-such-style")}, ErrUnknownHighlight},
		{"missing asset path", []Option{WithAssetPath("/nonexistent/abc123")}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(append([]Option{withPDFConverter(&fakePDF{})}, tt.opts...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && conv == nil {
				t.Fatal("NewConverter() returned nil")
			}
		})
	}
}

func TestWithTimeout_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - End to end
// ---------------------------------------------------------------------------

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	res, err := conv.Convert(context.Background(), Input{
		Content:   `<!doctype html><html><head><title>Hello</title></head><body><h1>Hi</h1><p>one <em>two</em></p></body></html>`,
		OriginURL: "https://blog.example.com/hi",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := &document.Document{
		Meta: document.Meta{OriginURL: "https://blog.example.com/hi", Title: "Hello"},
		Body: document.Body{Blocks: []document.Block{
			document.Heading{Level: document.H1, Inlines: []document.Inline{document.Text("Hi")}},
			document.Paragraph{Inlines: []document.Inline{
				document.Text("one "),
				document.Italic{document.Text("two")},
			}},
		}},
	}
	if diff := cmp.Diff(want, res.Document, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Document mismatch (-want +got):\n%s", diff)
	}

	page := string(res.HTML)
	for _, s := range []string{
		"<title>Hello</title>",
		`<link rel="stylesheet" href="css/reset.css">`,
		`<link rel="stylesheet" href="css/blog.css">`,
		"<h1>Hi</h1>\n<p>one <em>two</em></p>\n",
	} {
		if !strings.Contains(page, s) {
			t.Errorf("HTML missing %q:\n%s", s, page)
		}
	}
	if res.Markdown != nil || res.PDF != nil {
		t.Error("Markdown and PDF should be nil unless requested")
	}
}

func TestConverter_Convert_Outputs(t *testing.T) {
	t.Parallel()

	conv, fake := newTestConverter(t, WithStyles("main", "https://cdn.example.com/x.css"))

	res, err := conv.Convert(context.Background(), Input{
		Content:  "<h2>Notes</h2><ul><li>a</li><li>b</li></ul>",
		Title:    "Notes page",
		Markdown: true,
		PDF:      true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	md := string(res.Markdown)
	for _, s := range []string{"# Notes page", "## Notes", "- a", "- b"} {
		if !strings.Contains(md, s) {
			t.Errorf("Markdown missing %q:\n%s", s, md)
		}
	}

	if string(res.PDF) != "%PDF-fake" {
		t.Errorf("PDF = %q", res.PDF)
	}
	// The printable page inlines named styles and keeps only URL links.
	if strings.Contains(fake.got, "css/main.css") {
		t.Error("printable page links a relative stylesheet")
	}
	if !strings.Contains(fake.got, `href="https://cdn.example.com/x.css"`) || !strings.Contains(fake.got, "<style>") {
		t.Errorf("printable page missing URL link or inline CSS:\n%s", fake.got)
	}
}

func TestConverter_Convert_PDFFileStyle(t *testing.T) {
	t.Parallel()

	css := filepath.Join(t.TempDir(), "site.css")
	conv, fake := newTestConverter(t, WithStyles("main", css))

	if err := os.WriteFile(css, []byte("h1 { color: teal }"), 0o644); err != nil {
		t.Fatalf("failed to write CSS file: %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{Content: "<h1>T</h1>", PDF: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(fake.got, "h1 { color: teal }") {
		t.Errorf("printable page does not inline %s:\n%s", css, fake.got)
	}
	if strings.Contains(fake.got, `href="`+css+`"`) {
		t.Error("printable page links a file path stylesheet")
	}
	if !strings.Contains(string(res.HTML), `href="`+css+`"`) {
		t.Errorf("HTML output should link %s:\n%s", css, res.HTML)
	}

	if err := os.Remove(css); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := conv.Convert(context.Background(), Input{Content: "<h1>T</h1>", PDF: true}); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("Convert() with missing stylesheet error = %v, want ErrStyleNotFound", err)
	}
}

func TestConverter_Convert_Markdown(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, WithStyles())

	res, err := conv.Convert(context.Background(), Input{
		Content: "# Title\n\nSome **bold** text.\n\n> quoted\n",
		Format:  FormatMarkdown,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := []document.Block{
		document.Heading{Level: document.H1, Inlines: []document.Inline{document.Text("Title")}},
		document.Paragraph{Inlines: []document.Inline{
			document.Text("Some "),
			document.Bold{document.Text("bold")},
			document.Text(" text."),
		}},
		document.Blockquote{Blocks: []document.Block{para("quoted")}},
	}
	if diff := cmp.Diff(want, res.Document.Body.Blocks, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestConverter_Convert_Selector(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	page := `<!doctype html><html><body><nav><p>menu</p></nav><article><p>post</p></article></body></html>`

	res, err := conv.Convert(context.Background(), Input{Content: page, Selector: "article"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if diff := cmp.Diff([]document.Block{para("post")}, res.Document.Body.Blocks); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}

	_, err = conv.Convert(context.Background(), Input{Content: page, Selector: "main"})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Convert(main) error = %v, want ErrNoMatch", err)
	}
	_, err = conv.Convert(context.Background(), Input{Content: page, Selector: "[[["})
	if !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("Convert([[[) error = %v, want ErrInvalidSelector", err)
	}
}

func TestConverter_Convert_RootParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wrap    bool
		want    []document.Block
	}{
		{"fragment dropped", "loose<p>kept</p>", false, []document.Block{para("kept")}},
		{"fragment wrapped", "loose<p>kept</p>", true, []document.Block{para("loose"), para("kept")}},
		{"page dropped", "<!doctype html><body>loose<p>kept</p></body>", false, []document.Block{para("kept")}},
		{"page wrapped from body", "<!doctype html><body>loose<p>kept</p></body>", true, []document.Block{para("loose"), para("kept")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, _ := newTestConverter(t, WithRootParagraphs(tt.wrap))
			res, err := conv.Convert(context.Background(), Input{Content: tt.content})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, res.Document.Body.Blocks, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConverter_Convert_RootParagraphsSelector(t *testing.T) {
	t.Parallel()

	page := `<!doctype html><body>` +
		`<article>intro<p>body</p></article>` +
		`<ul><li>a</li></ul>` +
		`<blockquote>q</blockquote>` +
		`<h2>Title</h2>` +
		`</body>`

	tests := []struct {
		selector string
		want     []document.Block
	}{
		{"article", []document.Block{para("intro"), para("body")}},
		{"ul", []document.Block{document.List{Kind: document.Unordered, Items: []document.ListItem{
			{Blocks: []document.Block{para("a")}},
		}}}},
		{"blockquote", []document.Block{document.Blockquote{Blocks: []document.Block{para("q")}}}},
		{"h2", []document.Block{document.Heading{Level: document.H2, Inlines: []document.Inline{document.Text("Title")}}}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			conv, _ := newTestConverter(t, WithRootParagraphs(true))
			res, err := conv.Convert(context.Background(), Input{Content: page, Selector: tt.selector})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, res.Document.Body.Blocks, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConverter_Convert_Reader(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Reader:  strings.NewReader("# Read\n\nfrom a *reader*"),
		Format:  FormatMarkdown,
		Content: "<p>ignored</p>",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	want := []document.Block{
		document.Heading{Level: document.H1, Inlines: []document.Inline{document.Text("Read")}},
		document.Paragraph{Inlines: []document.Inline{document.Text("from a "), document.Italic{document.Text("reader")}}},
	}
	if diff := cmp.Diff(want, res.Document.Body.Blocks); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestConverter_Convert_Errors(t *testing.T) {
	t.Parallel()

	conv, fake := newTestConverter(t, WithMaxInputSize(64))
	fake.err = ErrPageLoad

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"empty", Input{Content: "  \n"}, ErrEmptyInput},
		{"too large", Input{Content: strings.Repeat("x", 65)}, ErrInputTooLarge},
		{"reader too large", Input{Reader: strings.NewReader(strings.Repeat("x", 65))}, ErrInputTooLarge},
		{"reader failure", Input{Reader: iotest.ErrReader(errors.New("disk gone"))}, ErrInputRead},
		{"empty reader", Input{Reader: strings.NewReader(""), Content: "<p>ignored</p>"}, ErrEmptyInput},
		{"unknown format", Input{Content: "<p>x</p>", Format: "rtf"}, ErrUnknownFormat},
		{"pdf failure", Input{Content: "<p>x</p>", PDF: true}, ErrPageLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := conv.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("Convert() returned a partial result with an error")
			}
		})
	}
}

func TestConverter_Convert_Canceled(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Content: "# x", Format: FormatMarkdown})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConverter_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	conv, _ := newTestConverter(t, WithLogger(log))

	if _, err := conv.Convert(context.Background(), Input{Content: "<ul>stray<li>a</li></ul>"}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "msg=converted") || !strings.Contains(out, "blocks=") {
		t.Errorf("missing conversion record:\n%s", out)
	}
	if !strings.Contains(out, "text dropped") {
		t.Errorf("missing dropped-text record:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// TestConverter_ConvertNode / Render - Pre-parsed trees
// ---------------------------------------------------------------------------

func TestConverter_ConvertNode(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	root, err := html.Parse(strings.NewReader("<p>a<strong>b</strong></p>"))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}

	doc, err := conv.ConvertNode(root, document.Meta{OriginURL: "u"})
	if err != nil {
		t.Fatalf("ConvertNode() error = %v", err)
	}
	want := []document.Block{document.Paragraph{Inlines: []document.Inline{
		document.Text("a"), document.Bold{document.Text("b")},
	}}}
	if diff := cmp.Diff(want, doc.Body.Blocks); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}

	empty, err := conv.ConvertNode(nil, document.Meta{})
	if err != nil || len(empty.Body.Blocks) != 0 {
		t.Errorf("ConvertNode(nil) = (%v, %v), want empty document", empty, err)
	}
}

func TestConverter_RenderIsFixedPoint(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, WithLangFromClass(true))

	first, err := conv.Convert(context.Background(), Input{
		Content: `<h3>T</h3><ol><li>x<ul><li><b>y</b></li></ul></li></ol><blockquote>q</blockquote><hr><pre><code class="language-go">x := 1</code></pre>`,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	second, err := conv.Convert(context.Background(), Input{Content: string(first.HTML)})
	if err != nil {
		t.Fatalf("Convert(rendered) error = %v", err)
	}
	if diff := cmp.Diff(first.Document.Body, second.Document.Body, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("re-conversion changed the document (-first +second):\n%s", diff)
	}

	again, err := conv.Render(second.Document)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first.HTML, again) {
		t.Errorf("re-render differs:\n%s\n---\n%s", first.HTML, again)
	}
}

func TestConverter_Render_NilBlock(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	doc := &document.Document{Body: document.Body{Blocks: []document.Block{nil}}}

	if _, err := conv.Render(doc); !errors.Is(err, ErrHTMLRender) {
		t.Errorf("Render() error = %v, want ErrHTMLRender", err)
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	fake := &fakePDF{}
	conv, err := NewConverter(withPDFConverter(fake))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not close the PDF backend")
	}
}

// ---------------------------------------------------------------------------
// TestPanicError - Recovered values
// ---------------------------------------------------------------------------

func TestPanicError(t *testing.T) {
	t.Parallel()

	err := panicError(&convert.ContractError{Op: "append block"})
	if !errors.Is(err, ErrContractViolation) {
		t.Errorf("panicError(ContractError) = %v, want ErrContractViolation", err)
	}
	if !strings.Contains(err.Error(), "append block") {
		t.Errorf("error %q lost the operation", err)
	}

	err = panicError("boom")
	if errors.Is(err, ErrContractViolation) || !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("panicError(string) = %v", err)
	}
}
