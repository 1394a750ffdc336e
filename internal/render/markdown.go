package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/alnah/go-html2doc/document"
)

// Markdown renders doc's blocks as HTML and converts them to CommonMark.
// A title in Meta becomes a leading level-one heading.
func Markdown(doc *document.Document) (string, error) {
	if doc == nil {
		return "", nil
	}

	var b strings.Builder
	if doc.Meta.Title != "" {
		b.WriteString("<h1>")
		b.WriteString(html.EscapeString(doc.Meta.Title))
		b.WriteString("</h1>\n")
	}
	if err := Fragment(&b, doc.Body.Blocks); err != nil {
		return "", err
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	md, err := conv.ConvertString(b.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdown, err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return "", nil
	}
	return md + "\n", nil
}
