// Package html2doc converts HTML pages into a typed document model and
// renders that model back out as canonical HTML, Markdown or PDF.
//
// # Quick Start
//
// Create a converter, convert a page, and close when done:
//
//	conv, err := html2doc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, html2doc.Input{
//	    Content:  "<h1>Hello</h1><p>World <em>again</em></p>",
//	    Markdown: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// The result always holds the typed tree (result.Document) and the rendered
// page (result.HTML). Markdown and PDF are produced when the input asks for
// them.
//
// # Conversion Pipeline
//
//  1. Input loading: Markdown goes through goldmark first, then the HTML is
//     parsed with golang.org/x/net/html and an optional CSS selector picks
//     the content node (goquery).
//  2. Conversion: the node tree is walked into document.Document. Unknown
//     elements are transparent, stray text is dropped, and list items and
//     blockquotes wrap loose inline content in paragraphs.
//  3. Rendering: the document is written as a fixed HTML page shell, with
//     optional chroma highlighting for code blocks whose language is known.
//  4. Optional outputs: Markdown (html-to-markdown) and PDF (headless Chrome
//     via go-rod).
//
// Converting the rendered HTML again yields the same document.
//
// # Configuration
//
//	conv, err := html2doc.NewConverter(
//	    html2doc.WithStyles("reset", "main", "https://cdn.example.com/site.css"),
//	    html2doc.WithHighlight("github"),
//	    html2doc.WithRootParagraphs(true),
//	    html2doc.WithLogger(slog.Default()),
//	)
//
// Pre-parsed trees skip the loading step:
//
//	doc, err := conv.ConvertNode(root, document.Meta{OriginURL: u})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool; each converter owns its browser:
//
//	pool := html2doc.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF output requires Chrome/Chromium. go-rod downloads a managed Chromium on
// first use. Set ROD_BROWSER_BIN to use an installed binary; the sandbox is
// disabled when it is set or when CI=true.
package html2doc
