package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunStyles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"list", nil, ExitSuccess, "Stylesheets (--style):\n  blog\n  main\n  reset\n"},
		{"embedded css", []string{"reset"}, ExitSuccess, "{"},
		{"highlight css", []string{"monokai"}, ExitSuccess, ".chroma"},
		{"help", []string{"--help"}, ExitSuccess, "Usage: html2doc styles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(context.Background(), append([]string{"styles"}, tt.args...), env)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, stdout)
			}
		})
	}
}

func TestRunStyles_AssetPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFile(t, base, "styles/print.css", "@page { margin: 1cm }")

	env, stdout, stderr := testEnv(nil)
	if code := runMain(context.Background(), []string{"styles", "--asset-path", base}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "  main\n  print\n  reset\n") {
		t.Errorf("custom style not listed:\n%s", stdout)
	}

	env, stdout, _ = testEnv(nil)
	runMain(context.Background(), []string{"styles", "--asset-path", base, "print"}, env)
	if stdout.String() != "@page { margin: 1cm }" {
		t.Errorf("print.css = %q", stdout)
	}
}

func TestRunConfigCmd(t *testing.T) {
	t.Parallel()

	t.Run("defaults with env", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(map[string]string{"HTML2DOC_SELECTOR": "article"})
		if code := runMain(context.Background(), []string{"config"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		got := stdout.String()
		for _, want := range []string{"formats:", "- html", "selector: article", "lang: en"} {
			if !strings.Contains(got, want) {
				t.Errorf("config output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("config file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "site.yaml", "output:\n  lang: fr\n  formats: [pdf]\n")
		env, stdout, stderr := testEnv(nil)
		if code := runMain(context.Background(), []string{"config", "-c", path}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, stderr)
		}
		if got := stdout.String(); !strings.Contains(got, "lang: fr") || !strings.Contains(got, "- pdf") {
			t.Errorf("config output:\n%s", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(nil)
		code := runMain(context.Background(), []string{"config", "-c", "no-such-config-html2doc"}, env)
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "hint: use --config") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}

func TestRunHelp_EveryCommand(t *testing.T) {
	t.Parallel()

	for _, c := range commands {
		env, stdout, _ := testEnv(nil)
		if code := runHelp([]string{c}, env); code != ExitSuccess {
			t.Errorf("help %s exit code = %d", c, code)
		}
		if !strings.Contains(stdout.String(), "Usage: html2doc") {
			t.Errorf("help %s = %q", c, stdout)
		}
	}
}
