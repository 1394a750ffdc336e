package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/fileutil"
	"github.com/alnah/go-html2doc/internal/source"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("unsupported input extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputBase string // output path without extension
}

// discoverFiles finds all HTML and Markdown files to convert. A single file
// with an unknown extension is accepted when format is explicit.
func discoverFiles(inputPath, outputDir string, format source.Format) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if format == source.FormatAuto {
			if err := validateInputExtension(inputPath); err != nil {
				return nil, err
			}
		}
		return []FileToConvert{{InputPath: inputPath, OutputBase: resolveOutputBase(inputPath, outputDir, "")}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			// Hidden directories hold tooling state, not pages.
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := source.FormatFromPath(path); !ok {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputBase: resolveOutputBase(path, outputDir, inputPath)})
		return nil
	})

	return files, err
}

// resolveOutputBase determines the extensionless output path for an input.
// An outputDir ending in .html, .md or .pdf names the file itself.
func resolveOutputBase(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), "")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir == "" && slices.Contains([]string{".html", ".md", ".pdf"}, strings.ToLower(filepath.Ext(outputDir))) {
		return fileutil.ReplaceExt(outputDir, "")
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateInputExtension checks that the file has an HTML or Markdown extension.
func validateInputExtension(path string) error {
	if _, ok := source.FormatFromPath(path); !ok {
		return fmt.Errorf("%w: got %q (want one of %s, or set --format)",
			ErrInvalidExtension, filepath.Ext(path), strings.Join(source.Extensions(), ", "))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > html2doc.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, html2doc.MaxPoolSize)
	}
	return nil
}
