package assets

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2doc/internal/fileutil"
)

// DefaultStyles are linked from every page unless configured otherwise,
// in cascade order.
var DefaultStyles = []string{"reset", "main", "blog"}

// IsExternal reports whether a configured style entry is used as-is (a URL
// or a path) rather than resolved by name through an AssetLoader.
func IsExternal(entry string) bool {
	return fileutil.IsURL(entry) || fileutil.IsFilePath(entry)
}

// Hrefs returns the <link> hrefs for styles. Named styles become
// {cssDir}/{name}.css with forward slashes; external entries are kept
// unchanged.
func Hrefs(cssDir string, styles []string) []string {
	dir := filepath.ToSlash(cssDir)
	hrefs := make([]string, 0, len(styles))
	for _, s := range styles {
		if IsExternal(s) {
			hrefs = append(hrefs, s)
			continue
		}
		if dir == "" {
			hrefs = append(hrefs, s+".css")
			continue
		}
		hrefs = append(hrefs, path.Join(dir, s+".css"))
	}
	return hrefs
}

// LoadStyles concatenates the styles in order for inlining. Names go
// through loader and file path entries are read from disk. URLs are skipped:
// they stay linked.
func LoadStyles(loader AssetLoader, styles []string) (string, error) {
	var b strings.Builder
	for _, s := range styles {
		if fileutil.IsURL(s) {
			continue
		}
		css, err := loadEntry(loader, s)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.TrimSpace(css))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func loadEntry(loader AssetLoader, entry string) (string, error) {
	if !fileutil.IsFilePath(entry) {
		return loader.LoadStyle(entry)
	}
	content, err := os.ReadFile(entry) // #nosec G304 -- stylesheet path from user config
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, entry)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// Publish writes each named style to {dir}/{name}.css so pages linking them
// with Hrefs(dir, styles) resolve. It returns the written paths.
func Publish(loader AssetLoader, dir string, styles []string) ([]string, error) {
	var written []string
	for _, s := range styles {
		if IsExternal(s) {
			continue
		}
		css, err := loader.LoadStyle(s)
		if err != nil {
			return written, err
		}
		dst := filepath.Join(dir, s+".css")
		if err := fileutil.WriteFileAtomic(dst, []byte(css), 0o644); err != nil {
			return written, fmt.Errorf("%w: %s: %v", ErrPublish, dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}
