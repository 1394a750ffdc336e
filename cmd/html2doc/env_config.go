package main

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-html2doc/internal/config"
)

// envPrefix marks the variables this tool reads.
const envPrefix = "HTML2DOC_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // HTML2DOC_CONFIG: config file name or path
	Formats    []string      // HTML2DOC_FORMATS: comma-separated output formats
	Timeout    time.Duration // HTML2DOC_TIMEOUT: PDF page load timeout

	// Tier 2 - I/O
	InputDir  string // HTML2DOC_INPUT_DIR: default input directory
	OutputDir string // HTML2DOC_OUTPUT_DIR: default output directory
	Selector  string // HTML2DOC_SELECTOR: content selector

	// Tier 3 - Rendering and runtime
	Styles    []string // HTML2DOC_STYLE: comma-separated stylesheets
	Lang      string   // HTML2DOC_LANG: html lang attribute
	Highlight string   // HTML2DOC_HIGHLIGHT: chroma style
	Workers   int      // HTML2DOC_WORKERS: parallel workers
	LogFormat string   // HTML2DOC_LOG_FORMAT: text or json
}

// knownEnvVars lists valid HTML2DOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2DOC_CONFIG":     true,
	"HTML2DOC_FORMATS":    true,
	"HTML2DOC_TIMEOUT":    true,
	"HTML2DOC_INPUT_DIR":  true,
	"HTML2DOC_OUTPUT_DIR": true,
	"HTML2DOC_SELECTOR":   true,
	"HTML2DOC_STYLE":      true,
	"HTML2DOC_LANG":       true,
	"HTML2DOC_HIGHLIGHT":  true,
	"HTML2DOC_WORKERS":    true,
	"HTML2DOC_LOG_FORMAT": true,
	"HTML2DOC_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("HTML2DOC_CONFIG"),
		Formats:    splitList(getenv("HTML2DOC_FORMATS")),
		InputDir:   getenv("HTML2DOC_INPUT_DIR"),
		OutputDir:  getenv("HTML2DOC_OUTPUT_DIR"),
		Selector:   getenv("HTML2DOC_SELECTOR"),
		Styles:     splitList(getenv("HTML2DOC_STYLE")),
		Lang:       getenv("HTML2DOC_LANG"),
		Highlight:  getenv("HTML2DOC_HIGHLIGHT"),
		LogFormat:  getenv("HTML2DOC_LOG_FORMAT"),
	}

	if timeout := getenv("HTML2DOC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("HTML2DOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2DOC_* variables.
// Helps catch typos like HTML2DOC_OUTPUT instead of HTML2DOC_OUTPUT_DIR.
func warnUnknownEnvVars(environ []string, log *slog.Logger) {
	for _, env := range environ {
		name, _, _ := strings.Cut(env, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A value is only set when the config left the field empty or at its
// default, so: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if len(env.Formats) > 0 && slices.Equal(cfg.Output.Formats, defaults.Output.Formats) {
		cfg.Output.Formats = env.Formats
	}

	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Selector != "" && cfg.Input.Selector == "" {
		cfg.Input.Selector = env.Selector
	}

	if len(env.Styles) > 0 && slices.Equal(cfg.Assets.Styles, defaults.Assets.Styles) {
		cfg.Assets.Styles = env.Styles
	}
	if env.Lang != "" && (cfg.Output.Lang == "" || cfg.Output.Lang == defaults.Output.Lang) {
		cfg.Output.Lang = env.Lang
	}
	if env.Highlight != "" && cfg.Render.Highlight == "" {
		cfg.Render.Highlight = env.Highlight
	}
}
