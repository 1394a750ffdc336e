package main

import (
	"cmp"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/yamlutil"
)

// runConfigCmd prints the effective configuration as YAML: defaults, then
// the config file, then HTML2DOC_* variables.
func runConfigCmd(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	name := fs.StringP("config", "c", "", "config file name or path")
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg := config.DefaultConfig()
	if n := cmp.Or(*name, envCfg.ConfigPath); n != "" {
		loaded, err := config.LoadConfig(n)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	applyEnvConfig(envCfg, cfg)

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
