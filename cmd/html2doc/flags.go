package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// inputFlags select and describe the pages to read.
type inputFlags struct {
	format   string // "html", "markdown" or "" (by extension)
	selector string
	url      string // origin URL, single input only
	title    string // title override, single input only
}

// styleFlags holds stylesheet and rendering flags.
type styleFlags struct {
	styles     []string // names, paths or URLs
	noStyle    bool
	cssDir     string
	assetPath  string
	highlight  string
	lang       string
	publishCSS bool
}

// treeFlags tune the HTML-to-document conversion.
type treeFlags struct {
	rootParagraphs bool
	langFromClass  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	to      []string // output formats
	dump    bool     // print each document tree
	input   inputFlags
	style   styleFlags
	tree    treeFlags

	// changed records flags given on the command line, so booleans left
	// at false do not override a config file that sets them.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs, timings and sizes")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addInputFlags adds input selection flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "input format: html, markdown (default: by extension)")
	fs.StringVarP(&f.selector, "selector", "s", "", "CSS selector of the content element, e.g. article")
	fs.StringVar(&f.url, "url", "", "origin URL stored in the document (single input)")
	fs.StringVar(&f.title, "title", "", "page title override (single input)")
}

// addStyleFlags adds stylesheet and rendering flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringSliceVar(&f.styles, "style", nil, "stylesheet names, paths or URLs, in cascade order")
	fs.BoolVar(&f.noStyle, "no-style", false, "render pages without stylesheets")
	fs.StringVar(&f.cssDir, "css-dir", "", "directory pages link named styles from (default: css)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom styles directory")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code blocks (see 'html2doc styles')")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute (default: en)")
	fs.BoolVar(&f.publishCSS, "publish-css", false, "copy named styles next to the HTML output")
}

// addTreeFlags adds conversion flags to a FlagSet.
func addTreeFlags(fs *flag.FlagSet, f *treeFlags) {
	fs.BoolVar(&f.rootParagraphs, "root-paragraphs", false, "wrap loose top-level text in paragraphs")
	fs.BoolVar(&f.langFromClass, "lang-from-class", false, "read code languages from language-* classes")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
	fs.StringSliceVar(&f.to, "to", nil, "output formats: html, markdown, pdf (default: html)")
	fs.BoolVar(&f.dump, "dump", false, "print each document tree")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addStyleFlags(fs, &f.style)
	addTreeFlags(fs, &f.tree)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{changed: make(map[string]bool)}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
