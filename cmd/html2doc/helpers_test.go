package main

// Notes:
// - Test infrastructure shared by the command tests: an Environment over
//   buffers and a fixed variable map, a scripted converter and pool, and a
//   file writer.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	html2doc "github.com/alnah/go-html2doc"
)

// testEnv returns an Environment writing to buffers, seeing only vars, and
// building real converter pools (HTML and Markdown output need no browser).
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			var out []string
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewPool: newConverterPool,
	}
	return env, stdout, stderr
}

// writeFile creates dir/name with content, making parents.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// fakeConverter returns a fixed result and records its inputs.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []html2doc.Input
	result *html2doc.ConvertResult
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, input html2doc.Input) (*html2doc.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakePool hands out conv, or nil with initErr.
type fakePool struct {
	conv    CLIConverter
	size    int
	initErr error
	closed  bool
}

func (p *fakePool) Acquire() CLIConverter {
	if p.initErr != nil {
		return nil
	}
	return p.conv
}

func (p *fakePool) Release(CLIConverter) {}

func (p *fakePool) Size() int      { return p.size }
func (p *fakePool) InitErr() error { return p.initErr }
func (p *fakePool) Close() error   { p.closed = true; return nil }
