package html2doc

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type fakeRenderer struct {
	path    string
	content string
	err     error
	closed  bool
}

func (f *fakeRenderer) RenderFromFile(_ context.Context, filePath string) ([]byte, error) {
	f.path = filePath
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f.content = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF"), nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestRodConverter - Temp file handling around the renderer
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{}
	c := &rodConverter{renderer: r}

	got, err := c.ToPDF(context.Background(), "<!doctype html><p>x</p>")
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(got) != "%PDF" {
		t.Errorf("ToPDF() = %q", got)
	}
	if r.content != "<!doctype html><p>x</p>" {
		t.Errorf("renderer read %q", r.content)
	}
	if !strings.HasSuffix(r.path, ".html") {
		t.Errorf("temp file %q should end in .html", r.path)
	}
	if _, err := os.Stat(r.path); !os.IsNotExist(err) {
		t.Errorf("temp file %s not removed", r.path)
	}

	if err := c.Close(); err != nil || !r.closed {
		t.Errorf("Close() = %v, closed = %v", err, r.closed)
	}
}

func TestRodConverter_ToPDF_Error(t *testing.T) {
	t.Parallel()

	r := &fakeRenderer{err: ErrPDFGeneration}
	c := &rodConverter{renderer: r}

	if _, err := c.ToPDF(context.Background(), "<p>x</p>"); !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("ToPDF() error = %v, want ErrPDFGeneration", err)
	}
	if _, err := os.Stat(r.path); !os.IsNotExist(err) {
		t.Errorf("temp file %s not removed after failure", r.path)
	}
}

func TestRodRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(defaultTimeout, nil)
	if _, err := r.RenderFromFile(ctx, "/tmp/none.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without a browser = %v", err)
	}
}

func TestPDFOptions(t *testing.T) {
	t.Parallel()

	o := pdfOptions()
	if *o.PaperWidth != paperWidthInches || *o.PaperHeight != paperHeightInches {
		t.Errorf("paper = %vx%v, want US Letter", *o.PaperWidth, *o.PaperHeight)
	}
	for name, m := range map[string]*float64{"top": o.MarginTop, "bottom": o.MarginBottom, "left": o.MarginLeft, "right": o.MarginRight} {
		if *m != marginInches {
			t.Errorf("margin %s = %v, want %v", name, *m, marginInches)
		}
	}
	if !o.PrintBackground {
		t.Error("PrintBackground = false")
	}
}
