package source

import "errors"

// Sentinel errors for loading input.
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrInputTooLarge   = errors.New("input exceeds maximum size")
	ErrRead            = errors.New("failed to read input")
	ErrParse           = errors.New("HTML parsing failed")
	ErrInvalidSelector = errors.New("invalid CSS selector")
	ErrNoMatch         = errors.New("selector matched nothing")
	ErrMarkdown        = errors.New("markdown conversion failed")
	ErrUnknownFormat   = errors.New("unknown input format")
)
