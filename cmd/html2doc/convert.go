package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	html2doc "github.com/alnah/go-html2doc"
	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/logging"
	"github.com/alnah/go-html2doc/internal/source"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoFiles          = errors.New("no HTML or Markdown files found")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrConversionFailed = errors.New("conversion failed")
	ErrConverterInit    = errors.New("failed to initialize converter")
)

// newLogger builds the run's logger from flags, falling back to
// HTML2DOC_LOG_FORMAT for the format.
func newLogger(f commonFlags, env *Environment) (*slog.Logger, error) {
	format, err := logging.ParseFormat(cmp.Or(f.logFormat, env.Getenv("HTML2DOC_LOG_FORMAT")))
	if err != nil {
		return nil, err
	}
	return logging.New(env.Stderr, logging.LevelFor(f.verbose, f.quiet), format), nil
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, log *slog.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Environ(), log)
	envCfg := loadEnvConfig(env.Getenv)

	cfg, err := loadEffectiveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	format, err := source.ParseFormat(cfg.Input.Format)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, outputDir, format)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}
	if len(files) > 1 && (flags.input.url != "" || flags.input.title != "") {
		return fmt.Errorf("%w: --url and --title need a single input file", config.ErrInvalidValue)
	}

	workers := cmp.Or(flags.workers, envCfg.Workers)
	poolSize := min(html2doc.ResolvePoolSize(workers), len(files))
	log.Debug("starting conversion", "files", len(files), "workers", poolSize, "formats", cfg.Output.Formats)

	pool := env.NewPool(poolSize, converterOptions(cfg, timeout, log)...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converters", "err", err)
		}
	}()

	// Build the first converter now so bad styles fail before any file is read.
	first := pool.Acquire()
	if first == nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, pool.InitErr())
	}
	pool.Release(first)

	if cfg.Assets.Publish && cfg.HasFormat(config.FormatHTML) {
		if err := publishStyles(cfg, files, log); err != nil {
			return err
		}
	}

	params := &conversionParams{
		cfg:      cfg,
		inputDir: inputRoot(inputPath, files),
		url:      flags.input.url,
		title:    flags.input.title,
		dump:     flags.dump,
	}
	results := convertBatch(ctx, pool, files, params)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, params.dump, env)
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return results[0].Err
	default:
		return fmt.Errorf("%w: %d of %d files", ErrConversionFailed, failed, len(results))
	}
}

// loadEffectiveConfig layers config file, environment and flags, then
// validates the result.
func loadEffectiveConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name := cmp.Or(flags.common.config, envCfg.ConfigPath); name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.input.format != "" {
		cfg.Input.Format = flags.input.format
	}
	if flags.input.selector != "" {
		cfg.Input.Selector = flags.input.selector
	}
	if len(flags.to) > 0 {
		cfg.Output.Formats = flags.to
	}
	if flags.style.lang != "" {
		cfg.Output.Lang = flags.style.lang
	}

	switch {
	case flags.style.noStyle:
		cfg.Assets.Styles = nil
	case len(flags.style.styles) > 0:
		cfg.Assets.Styles = flags.style.styles
	}
	if flags.style.cssDir != "" {
		cfg.Assets.CSSDir = flags.style.cssDir
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.style.publishCSS {
		cfg.Assets.Publish = true
	}
	if flags.style.highlight != "" {
		cfg.Render.Highlight = flags.style.highlight
	}

	if flags.changed["root-paragraphs"] {
		cfg.Convert.RootParagraphs = flags.tree.rootParagraphs
	}
	if flags.changed["lang-from-class"] {
		cfg.Convert.LangFromClass = flags.tree.langFromClass
	}
}

// resolveTimeout parses the --timeout flag, falling back to the
// environment. Zero keeps the library default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// converterOptions translates the effective config into library options.
func converterOptions(cfg *config.Config, timeout time.Duration, log *slog.Logger) []html2doc.Option {
	opts := []html2doc.Option{
		html2doc.WithLogger(log),
		html2doc.WithStyles(cfg.Assets.Styles...),
		html2doc.WithLang(cfg.Output.Lang),
		html2doc.WithHighlight(cfg.Render.Highlight),
		html2doc.WithRootParagraphs(cfg.Convert.RootParagraphs),
		html2doc.WithLangFromClass(cfg.Convert.LangFromClass),
	}
	if cfg.Assets.CSSDir != "" {
		opts = append(opts, html2doc.WithCSSDir(cfg.Assets.CSSDir))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, html2doc.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, html2doc.WithTimeout(timeout))
	}
	return opts
}

// resolveInputPath picks the positional argument or the configured directory.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir picks the --output flag or the configured directory.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// inputRoot is the directory post paths are relative to.
func inputRoot(inputPath string, files []FileToConvert) string {
	if len(files) == 1 && files[0].InputPath == inputPath {
		return filepath.Dir(inputPath)
	}
	return inputPath
}

// publishStyles writes the named styles into a css directory beside every
// HTML output directory.
func publishStyles(cfg *config.Config, files []FileToConvert, log *slog.Logger) error {
	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return fmt.Errorf("%w: %v", html2doc.ErrInvalidAssetPath, err)
	}

	done := make(map[string]bool)
	for _, f := range files {
		dir := filepath.Join(filepath.Dir(f.OutputBase), cfg.Assets.CSSDir)
		if done[dir] {
			continue
		}
		done[dir] = true

		written, err := assets.Publish(loader, dir, cfg.Assets.Styles)
		if err != nil {
			return fmt.Errorf("publishing styles: %w", err)
		}
		log.Debug("published styles", "dir", dir, "files", len(written))
	}
	return nil
}
