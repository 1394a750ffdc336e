// Package source turns input bytes into the *html.Node tree the converter
// walks.
//
// Two input formats are accepted:
//   - HTML, either a full document or a body fragment
//   - Markdown, rendered to HTML with goldmark first
//
// An optional CSS selector (matched with goquery/cascadia) narrows the tree
// to the page's content, for example "article" or "main .post". The page
// <title>, when present, is reported alongside the tree.
package source
