package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/document"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/fileutil"
	"github.com/alnah/go-html2doc/internal/source"
)

// filePermissions is rw-r--r--: pages and PDFs are meant to be readable.
const filePermissions = 0o644

// Sentinel errors for batch operations.
var (
	ErrReadInput       = errors.New("failed to read input file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrOutputIsInput   = errors.New("output would overwrite its input")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// dumpSetup turns off pp's terminal colors before the first dump.
var dumpSetup sync.Once

// outputExt maps each output format to its file extension.
var outputExt = map[string]string{
	config.FormatHTML:     ".html",
	config.FormatMarkdown: ".md",
	config.FormatPDF:      ".pdf",
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	cfg      *config.Config
	inputDir string // posts are looked up relative to this
	url      string // single-file overrides
	title    string
	dump     bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	Outputs   []string
	Bytes     int64
	Document  *document.Document // kept for --dump
	Err       error
	Duration  time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				err := fmt.Errorf("%w: %w", ErrConverterInit, pool.InitErr())
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one file and writes every requested output.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	outputs, err := outputPaths(f, params.cfg.Output.Formats)
	if err != nil {
		return fail(err)
	}

	input, err := buildInput(f, params)
	if err != nil {
		return fail(err)
	}

	file, err := os.Open(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}
	defer func() { _ = file.Close() }()
	input.Reader = file

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}
	if params.dump {
		result.Document = res.Document
	}

	for _, format := range params.cfg.Output.Formats {
		data := outputData(res, format)
		path := outputs[format]
		if err := writeOutput(path, data); err != nil {
			return fail(err)
		}
		result.Outputs = append(result.Outputs, path)
		result.Bytes += int64(len(data))
	}

	result.Duration = time.Since(start)
	return result
}

// buildInput assembles the library input for one file: format from the
// config or the extension, and metadata from posts, flags or the path.
func buildInput(f FileToConvert, params *conversionParams) (html2doc.Input, error) {
	cfg := params.cfg

	format, err := source.ParseFormat(cfg.Input.Format)
	if err != nil {
		return html2doc.Input{}, err
	}
	if format == source.FormatAuto {
		format, _ = source.FormatFromPath(f.InputPath)
	}

	input := html2doc.Input{
		Format:    format,
		Selector:  cfg.Input.Selector,
		OriginURL: params.url,
		Title:     params.title,
		Markdown:  cfg.HasFormat(config.FormatMarkdown),
		PDF:       cfg.HasFormat(config.FormatPDF),
	}

	if rel, err := filepath.Rel(params.inputDir, f.InputPath); err == nil {
		if post, ok := cfg.PostFor(rel); ok {
			input.OriginURL = cmp.Or(input.OriginURL, post.URL)
			input.Title = cmp.Or(input.Title, post.Title)
		}
	}

	if input.OriginURL == "" {
		abs, err := filepath.Abs(f.InputPath)
		if err != nil {
			return html2doc.Input{}, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		if input.OriginURL, err = source.FileURL(abs); err != nil {
			return html2doc.Input{}, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
	}

	return input, nil
}

// outputPaths maps each format to its output file, refusing any path that
// would overwrite the input.
func outputPaths(f FileToConvert, formats []string) (map[string]string, error) {
	in, err := filepath.Abs(f.InputPath)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]string, len(formats))
	for _, format := range formats {
		path := f.OutputBase + outputExt[format]
		if abs, err := filepath.Abs(path); err == nil && abs == in {
			return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, path)
		}
		paths[format] = path
	}
	return paths, nil
}

// outputData picks the bytes of one format from a conversion result.
func outputData(res *html2doc.ConvertResult, format string) []byte {
	switch format {
	case config.FormatMarkdown:
		return res.Markdown
	case config.FormatPDF:
		return res.PDF
	default:
		return res.HTML
	}
}

// writeOutput writes data atomically, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// Documents are dumped here, after the workers finish, so trees from
// different files never interleave. A lone failure is left to the caller,
// which reports it as the command's error.
func printResults(results []ConversionResult, quiet, verbose, dump bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) == 1 {
				continue
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if dump && r.Document != nil {
			fmt.Fprintf(env.Stdout, "# %s\n", r.InputPath)
			dumpSetup.Do(func() { pp.ColoringEnabled = false })
			_, _ = pp.Fprintln(env.Stdout, r.Document)
		}

		if quiet {
			continue
		}

		for _, out := range r.Outputs {
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s\n", r.InputPath, out)
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "  %s in %v\n", humanize.Bytes(uint64(r.Bytes)), r.Duration.Round(time.Millisecond))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%s succeeded, %s failed\n",
			humanize.Comma(int64(summary.Succeeded)), humanize.Comma(int64(summary.Failed)))
	}

	return summary.Failed
}
