package main

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/document"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/source"
)

// ---------------------------------------------------------------------------
// Configuration layering
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &convertFlags{
			to:    []string{"markdown", "pdf"},
			input: inputFlags{format: "html", selector: "main"},
			style: styleFlags{styles: []string{"blog"}, cssDir: "assets", highlight: "github", lang: "fr", publishCSS: true},
			tree:  treeFlags{rootParagraphs: true},
			changed: map[string]bool{
				"root-paragraphs": true,
			},
		}
		mergeFlags(flags, cfg)

		if !slices.Equal(cfg.Output.Formats, []string{"markdown", "pdf"}) || !slices.Equal(cfg.Assets.Styles, []string{"blog"}) {
			t.Errorf("lists = %q %q", cfg.Output.Formats, cfg.Assets.Styles)
		}
		if cfg.Input.Format != "html" || cfg.Input.Selector != "main" || cfg.Assets.CSSDir != "assets" ||
			cfg.Render.Highlight != "github" || cfg.Output.Lang != "fr" || !cfg.Assets.Publish {
			t.Errorf("cfg = %+v", cfg)
		}
		if !cfg.Convert.RootParagraphs {
			t.Error("RootParagraphs not applied")
		}
	})

	t.Run("unset booleans keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Convert.RootParagraphs = true
		cfg.Convert.LangFromClass = true
		mergeFlags(&convertFlags{changed: map[string]bool{}}, cfg)

		if !cfg.Convert.RootParagraphs || !cfg.Convert.LangFromClass {
			t.Errorf("Convert = %+v, want config values kept", cfg.Convert)
		}
	})

	t.Run("explicit false overrides", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Convert.LangFromClass = true
		mergeFlags(&convertFlags{changed: map[string]bool{"lang-from-class": true}}, cfg)

		if cfg.Convert.LangFromClass {
			t.Error("--lang-from-class=false ignored")
		}
	})

	t.Run("no-style wins over style", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(&convertFlags{style: styleFlags{noStyle: true, styles: []string{"main"}}}, cfg)

		if cfg.Assets.Styles != nil {
			t.Errorf("Styles = %q, want nil", cfg.Assets.Styles)
		}
	})
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"unset", "", 0, 0, false},
		{"env", "", time.Minute, time.Minute, false},
		{"flag beats env", "90s", time.Minute, 90 * time.Second, false},
		{"garbage", "soon", 0, 0, true},
		{"zero", "0s", 0, 0, true},
		{"negative", "-1m", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("resolveTimeout() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("no input error = %v, want ErrNoInput", err)
	}

	cfg.Input.DefaultDir = "/pages"
	if got, _ := resolveInputPath(nil, cfg); got != "/pages" {
		t.Errorf("default dir = %q", got)
	}
	if got, _ := resolveInputPath([]string{"one.html"}, cfg); got != "one.html" {
		t.Errorf("positional = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Per-file input and outputs
// ---------------------------------------------------------------------------

func TestBuildInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Input.Selector = "article"
	cfg.Output.Formats = []string{"html", "pdf"}
	cfg.Posts = []config.Post{{Path: "blog/a.html", URL: "https://example.com/a", Title: "A"}}

	t.Run("post metadata", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(dir, "blog", "a.html")}
		input, err := buildInput(f, &conversionParams{cfg: cfg, inputDir: dir})
		if err != nil {
			t.Fatalf("buildInput() error = %v", err)
		}
		if input.OriginURL != "https://example.com/a" || input.Title != "A" {
			t.Errorf("metadata = %q %q", input.OriginURL, input.Title)
		}
		if input.Format != source.FormatHTML || input.Selector != "article" || !input.PDF || input.Markdown {
			t.Errorf("input = %+v", input)
		}
	})

	t.Run("flags beat posts", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(dir, "blog", "a.html")}
		input, err := buildInput(f, &conversionParams{cfg: cfg, inputDir: dir, url: "https://other.example/", title: "Flag"})
		if err != nil {
			t.Fatalf("buildInput() error = %v", err)
		}
		if input.OriginURL != "https://other.example/" || input.Title != "Flag" {
			t.Errorf("metadata = %q %q", input.OriginURL, input.Title)
		}
	})

	t.Run("file URL fallback", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(dir, "notes.md")}
		input, err := buildInput(f, &conversionParams{cfg: cfg, inputDir: dir})
		if err != nil {
			t.Fatalf("buildInput() error = %v", err)
		}
		if !strings.HasPrefix(input.OriginURL, "file://") || !strings.HasSuffix(input.OriginURL, "/notes.md") {
			t.Errorf("OriginURL = %q", input.OriginURL)
		}
		if input.Format != source.FormatMarkdown {
			t.Errorf("Format = %v, want markdown", input.Format)
		}
	})
}

func TestOutputPaths(t *testing.T) {
	t.Parallel()

	f := FileToConvert{InputPath: "/src/page.md", OutputBase: "/out/page"}
	paths, err := outputPaths(f, []string{"html", "markdown", "pdf"})
	if err != nil {
		t.Fatalf("outputPaths() error = %v", err)
	}
	if paths["html"] != "/out/page.html" || paths["markdown"] != "/out/page.md" || paths["pdf"] != "/out/page.pdf" {
		t.Errorf("paths = %v", paths)
	}

	f.OutputBase = "/src/page"
	if _, err := outputPaths(f, []string{"html", "markdown"}); !errors.Is(err, ErrOutputIsInput) {
		t.Errorf("collision error = %v, want ErrOutputIsInput", err)
	}
}

// ---------------------------------------------------------------------------
// Batch processing
// ---------------------------------------------------------------------------

func batchFixture(t *testing.T, n int) ([]FileToConvert, *conversionParams) {
	t.Helper()
	dir := t.TempDir()
	var files []FileToConvert
	for i := range n {
		name := string(rune('a'+i)) + ".html"
		files = append(files, FileToConvert{
			InputPath:  writeFile(t, dir, name, "<p>x</p>"),
			OutputBase: filepath.Join(dir, "out", strings.TrimSuffix(name, ".html")),
		})
	}
	cfg := config.DefaultConfig()
	cfg.Output.Formats = []string{"html", "markdown"}
	return files, &conversionParams{cfg: cfg, inputDir: dir, dump: true}
}

func TestConvertBatch_WritesOutputs(t *testing.T) {
	t.Parallel()

	files, params := batchFixture(t, 3)
	conv := &fakeConverter{result: &html2doc.ConvertResult{
		Document: &document.Document{Meta: document.Meta{Title: "T"}},
		HTML:     []byte("<p>x</p>"),
		Markdown: []byte("x\n"),
	}}
	pool := &fakePool{conv: conv, size: 2}

	results := convertBatch(context.Background(), pool, files, params)

	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.InputPath, r.Err)
		}
		if len(r.Outputs) != 2 || r.Bytes != int64(len("<p>x</p>")+len("x\n")) || r.Document == nil {
			t.Errorf("result = %+v", r)
		}
	}
	if got := readFile(t, files[2].OutputBase+".md"); got != "x\n" {
		t.Errorf("c.md = %q", got)
	}
	if len(conv.inputs) != 3 || !conv.inputs[0].Markdown || conv.inputs[0].PDF {
		t.Errorf("inputs = %+v", conv.inputs)
	}
}

func TestConvertBatch_InitFailure(t *testing.T) {
	t.Parallel()

	files, params := batchFixture(t, 2)
	pool := &fakePool{size: 2, initErr: html2doc.ErrStyleNotFound}

	for _, r := range convertBatch(context.Background(), pool, files, params) {
		if !errors.Is(r.Err, ErrConverterInit) || !errors.Is(r.Err, html2doc.ErrStyleNotFound) {
			t.Errorf("%s: error = %v", r.InputPath, r.Err)
		}
	}
}

func TestConvertBatch_Canceled(t *testing.T) {
	t.Parallel()

	files, params := batchFixture(t, 2)
	conv := &fakeConverter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range convertBatch(ctx, &fakePool{conv: conv, size: 1}, files, params) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
	if len(conv.inputs) != 0 {
		t.Errorf("converter called %d times after cancel", len(conv.inputs))
	}
}

func TestConvertBatch_ConverterError(t *testing.T) {
	t.Parallel()

	files, params := batchFixture(t, 1)
	conv := &fakeConverter{err: html2doc.ErrNoMatch}

	results := convertBatch(context.Background(), &fakePool{conv: conv, size: 1}, files, params)
	if !errors.Is(results[0].Err, html2doc.ErrNoMatch) {
		t.Errorf("error = %v, want ErrNoMatch", results[0].Err)
	}
}

// ---------------------------------------------------------------------------
// Reporting
// ---------------------------------------------------------------------------

func TestConvertFile_InputSize(t *testing.T) {
	t.Parallel()

	conv, err := html2doc.NewConverter(html2doc.WithMaxInputSize(32))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer func() { _ = conv.Close() }()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	params := &conversionParams{cfg: cfg, inputDir: dir}

	small := FileToConvert{InputPath: writeFile(t, dir, "small.html", "<p>ok</p>"), OutputBase: filepath.Join(dir, "out", "small")}
	if r := convertFile(context.Background(), conv, small, params); r.Err != nil {
		t.Errorf("small file error = %v", r.Err)
	}

	big := FileToConvert{InputPath: writeFile(t, dir, "big.html", "<p>"+strings.Repeat("x", 64)+"</p>"), OutputBase: filepath.Join(dir, "out", "big")}
	if r := convertFile(context.Background(), conv, big, params); !errors.Is(r.Err, html2doc.ErrInputTooLarge) {
		t.Errorf("big file error = %v, want ErrInputTooLarge", r.Err)
	}

	missing := FileToConvert{InputPath: filepath.Join(dir, "gone.html"), OutputBase: filepath.Join(dir, "out", "gone")}
	if r := convertFile(context.Background(), conv, missing, params); !errors.Is(r.Err, ErrReadInput) {
		t.Errorf("missing file error = %v, want ErrReadInput", r.Err)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	ok := ConversionResult{InputPath: "a.html", Outputs: []string{"out/a.html"}, Bytes: 2048, Duration: 12 * time.Millisecond}
	bad := ConversionResult{InputPath: "b.html", Err: html2doc.ErrNoMatch}

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		failed := printResults([]ConversionResult{ok, bad}, false, false, false, env)

		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if !strings.Contains(stdout.String(), "Created out/a.html") || !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout = %q", stdout)
		}
		if !strings.Contains(stderr.String(), "FAILED b.html") || !strings.Contains(stderr.String(), "hint: check --selector") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		printResults([]ConversionResult{ok}, false, true, false, env)

		if !strings.Contains(stdout.String(), "a.html -> out/a.html") || !strings.Contains(stdout.String(), "2.0 kB in 12ms") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("quiet dump", func(t *testing.T) {
		t.Parallel()

		withDoc := ok
		withDoc.Document = &document.Document{Meta: document.Meta{Title: "Dumped"}}
		env, stdout, _ := testEnv(nil)
		printResults([]ConversionResult{withDoc}, true, false, true, env)

		got := stdout.String()
		if !strings.HasPrefix(got, "# a.html\n") || !strings.Contains(got, `"Dumped"`) || strings.Contains(got, "Created") {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("lone failure left to caller", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(nil)
		if failed := printResults([]ConversionResult{bad}, false, false, false, env); failed != 1 {
			t.Errorf("failed = %d", failed)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", stderr)
		}
	})
}
