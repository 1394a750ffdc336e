package render

import "errors"

// Sentinel errors for rendering.
var (
	ErrWrite        = errors.New("render output failed")
	ErrUnknownStyle = errors.New("unknown highlight style")
	ErrMarkdown     = errors.New("markdown conversion failed")
)
