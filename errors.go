package html2doc

import (
	"errors"

	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/render"
	"github.com/alnah/go-html2doc/internal/source"
)

// Sentinel errors for library operations.
var (
	ErrContractViolation = errors.New("converter contract violation")
	ErrHTMLRender        = errors.New("HTML rendering failed")
	ErrMarkdownRender    = errors.New("markdown rendering failed")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrInvalidAssetPath  = errors.New("invalid asset path")
)

// Input errors. These are the loader's own values, so errors.Is matches
// however deeply they are wrapped.
var (
	ErrEmptyInput      = source.ErrEmptyInput
	ErrInputTooLarge   = source.ErrInputTooLarge
	ErrInputRead       = source.ErrRead
	ErrParse           = source.ErrParse
	ErrInvalidSelector = source.ErrInvalidSelector
	ErrNoMatch         = source.ErrNoMatch
	ErrMarkdownInput   = source.ErrMarkdown
	ErrUnknownFormat   = source.ErrUnknownFormat
)

// Option errors.
var (
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidStyleName = assets.ErrInvalidAssetName
	ErrUnknownHighlight = render.ErrUnknownStyle
)
