package main

import (
	"io"
	"os"
	"time"

	html2doc "github.com/alnah/go-html2doc"
)

// PoolFactory builds the converter pool for a run.
type PoolFactory func(size int, opts ...html2doc.Option) Pool

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment lookup and converter construction.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	NewPool PoolFactory
}

// DefaultEnv returns the production environment: real streams and
// variables, and pools of browser-backed converters.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewPool: newConverterPool,
	}
}
