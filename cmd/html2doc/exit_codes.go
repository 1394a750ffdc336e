package main

import (
	"context"
	"errors"
	"os"
	"strings"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/hints"
	"github.com/alnah/go-html2doc/internal/render"
)

// Exit codes for html2doc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2doc.ErrBrowserConnect) ||
		errors.Is(err, html2doc.ErrPageCreate) ||
		errors.Is(err, html2doc.ErrPageLoad) ||
		errors.Is(err, html2doc.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputIsInput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, html2doc.ErrEmptyInput) ||
		errors.Is(err, html2doc.ErrInputRead) ||
		errors.Is(err, html2doc.ErrInputTooLarge) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, html2doc.ErrStyleNotFound) ||
		errors.Is(err, html2doc.ErrInvalidStyleName) ||
		errors.Is(err, html2doc.ErrUnknownHighlight) ||
		errors.Is(err, html2doc.ErrInvalidAssetPath) ||
		errors.Is(err, html2doc.ErrUnknownFormat) ||
		errors.Is(err, html2doc.ErrInvalidSelector) ||
		errors.Is(err, html2doc.ErrNoMatch) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, html2doc.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, html2doc.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, html2doc.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Names())
	case errors.Is(err, html2doc.ErrUnknownHighlight):
		return hints.ForHighlightStyle(render.HighlightStyles())
	case errors.Is(err, html2doc.ErrNoMatch):
		return hints.ForNoMatch()
	case errors.Is(err, ErrOutputIsInput):
		return hints.ForOutputIsInput()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths recovers the searched locations from a config lookup error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
