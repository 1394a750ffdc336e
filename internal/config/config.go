package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/fileutil"
	"github.com/alnah/go-html2doc/internal/source"
	"github.com/alnah/go-html2doc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxTitleLength    = 300
	MaxSelectorLength = 500
	MaxLangLength     = 35 // BCP 47 tags stay well under this
	MaxStyleLength    = 100
	MaxPosts          = 10000
)

// Output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

var validFormats = []string{FormatHTML, FormatMarkdown, FormatPDF}

// Config holds all configuration for a conversion run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
	Render  RenderConfig  `yaml:"render"`
	Convert ConvertConfig `yaml:"convert"`
	Posts   []Post        `yaml:"posts"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Selector   string `yaml:"selector"`   // CSS selector for the content node (empty = whole page)
	Format     string `yaml:"format"`     // "html", "markdown" or empty to use the file extension
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Formats    []string `yaml:"formats"`    // Any of "html", "markdown", "pdf"
	Lang       string   `yaml:"lang"`       // <html lang>
}

// AssetsConfig defines stylesheet options.
type AssetsConfig struct {
	BasePath string   `yaml:"basePath"` // Custom styles directory (empty = embedded only)
	CSSDir   string   `yaml:"cssDir"`   // Directory the page links stylesheets from
	Styles   []string `yaml:"styles"`   // Style names, paths or URLs, in cascade order
	Publish  bool     `yaml:"publish"`  // Copy named styles into {output}/{cssDir}
}

// RenderConfig defines HTML rendering options.
type RenderConfig struct {
	Highlight string `yaml:"highlight"` // chroma style name (empty = no highlighting)
}

// ConvertConfig defines HTML-to-document conversion options.
type ConvertConfig struct {
	RootParagraphs bool `yaml:"rootParagraphs"` // Wrap loose top-level text in paragraphs
	LangFromClass  bool `yaml:"langFromClass"`  // Read language-* classes on code blocks
}

// Post gives metadata for one input file.
type Post struct {
	Path  string `yaml:"path"`  // Input file, relative to the input directory
	URL   string `yaml:"url"`   // Origin URL stored in the document
	Title string `yaml:"title"` // Page title (overrides the input's <title>)
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.selector", c.Input.Selector, MaxSelectorLength); err != nil {
		return err
	}
	if _, err := source.ParseFormat(c.Input.Format); err != nil {
		return fmt.Errorf("%w: input.format: %v", ErrInvalidValue, err)
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.lang", c.Output.Lang, MaxLangLength); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Output.Formats))
	for i, f := range c.Output.Formats {
		f = strings.ToLower(f)
		if !slices.Contains(validFormats, f) {
			return fmt.Errorf("%w: output.formats[%d]: %q (must be html, markdown or pdf)", ErrInvalidValue, i, c.Output.Formats[i])
		}
		if seen[f] {
			return fmt.Errorf("%w: output.formats[%d]: duplicate %q", ErrInvalidValue, i, f)
		}
		seen[f] = true
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.cssDir", c.Assets.CSSDir, MaxPathLength); err != nil {
		return err
	}
	for i, s := range c.Assets.Styles {
		field := fmt.Sprintf("assets.styles[%d]", i)
		if assets.IsExternal(s) {
			if err := validateFieldLength(field, s, MaxURLLength); err != nil {
				return err
			}
			continue
		}
		if err := validateFieldLength(field, s, MaxStyleLength); err != nil {
			return err
		}
		if err := assets.ValidateAssetName(s); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
	}

	if err := validateFieldLength("render.highlight", c.Render.Highlight, MaxStyleLength); err != nil {
		return err
	}

	if len(c.Posts) > MaxPosts {
		return fmt.Errorf("%w: posts: %d entries (max %d)", ErrInvalidValue, len(c.Posts), MaxPosts)
	}
	paths := make(map[string]bool, len(c.Posts))
	for i, p := range c.Posts {
		if strings.TrimSpace(p.Path) == "" {
			return fmt.Errorf("%w: posts[%d].path: required", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("posts[%d].path", i), p.Path, MaxPathLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("posts[%d].url", i), p.URL, MaxURLLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("posts[%d].title", i), p.Title, MaxTitleLength); err != nil {
			return err
		}
		key := filepath.Clean(filepath.FromSlash(p.Path))
		if paths[key] {
			return fmt.Errorf("%w: posts[%d].path: duplicate %q", ErrInvalidValue, i, p.Path)
		}
		paths[key] = true
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// HasFormat reports whether format is among the configured outputs.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// PostFor returns the post entry for an input file. rel is the file's path
// relative to the input directory; a post whose path has no directory part
// also matches by base name.
func (c *Config) PostFor(rel string) (Post, bool) {
	rel = filepath.Clean(filepath.FromSlash(rel))
	for _, p := range c.Posts {
		path := filepath.Clean(filepath.FromSlash(p.Path))
		if path == rel {
			return p, true
		}
		if !strings.ContainsAny(p.Path, "/\\") && path == filepath.Base(rel) {
			return p, true
		}
	}
	return Post{}, false
}

// DefaultConfig returns the configuration used without a config file:
// HTML output in English, linking the built-in stylesheets from css/.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Formats: []string{FormatHTML},
			Lang:    "en",
		},
		Assets: AssetsConfig{
			CSSDir: "css",
			Styles: slices.Clone(assets.DefaultStyles),
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-html2doc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-html2doc", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
