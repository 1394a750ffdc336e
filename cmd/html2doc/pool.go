package main

import (
	"context"
	"fmt"

	html2doc "github.com/alnah/go-html2doc"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input html2doc.Input) (*html2doc.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*html2doc.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
	InitErr() error
	Close() error
}

// poolAdapter exposes an html2doc.ConverterPool as a Pool.
type poolAdapter struct {
	pool *html2doc.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

// newConverterPool is the production PoolFactory.
func newConverterPool(size int, opts ...html2doc.Option) Pool {
	return &poolAdapter{pool: html2doc.NewConverterPool(size, opts...)}
}

// Acquire returns nil, not a typed nil, when creation fails.
func (a *poolAdapter) Acquire() CLIConverter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release panics on a converter the pool did not hand out (programmer error).
func (a *poolAdapter) Release(c CLIConverter) {
	if c == nil {
		return
	}
	conv, ok := c.(*html2doc.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int      { return a.pool.Size() }
func (a *poolAdapter) InitErr() error { return a.pool.InitErr() }
func (a *poolAdapter) Close() error   { return a.pool.Close() }
