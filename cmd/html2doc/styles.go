package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/render"
)

// runStyles lists the stylesheets and highlight styles, or prints the CSS
// of the one named in args. --asset-path adds a custom styles directory.
func runStyles(args []string, env *Environment) error {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	assetPath := fs.String("asset-path", "", "custom styles directory")
	fs.Usage = func() { printStylesUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}

	loader, err := assets.NewAssetResolver(*assetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", html2doc.ErrInvalidAssetPath, err)
	}

	if fs.NArg() == 0 {
		printStyleList(env.Stdout, "Stylesheets (--style):", loader.Names())
		fmt.Fprintln(env.Stdout)
		printStyleList(env.Stdout, "Highlight styles (--highlight):", render.HighlightStyles())
		return nil
	}

	name := fs.Arg(0)
	css, err := loader.LoadStyle(name)
	if err == nil {
		fmt.Fprint(env.Stdout, css)
		return nil
	}
	if !errors.Is(err, assets.ErrStyleNotFound) && !errors.Is(err, assets.ErrInvalidAssetName) {
		return err
	}

	css, err = render.HighlightCSS(name)
	if err != nil {
		return fmt.Errorf("%w: %q", html2doc.ErrStyleNotFound, name)
	}
	fmt.Fprint(env.Stdout, css)
	return nil
}

func printStyleList(w io.Writer, title string, names []string) {
	fmt.Fprintln(w, title)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
}
