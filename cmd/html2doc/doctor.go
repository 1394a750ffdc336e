package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2doc/internal/assets"
	"github.com/alnah/go-html2doc/internal/config"
	"github.com/alnah/go-html2doc/internal/fileutil"
)

// checkLevel grades one doctor check.
type checkLevel string

const (
	levelOK   checkLevel = "ok"
	levelWarn checkLevel = "warn"
	levelFail checkLevel = "fail"
)

// Overall verdicts. Only "broken" fails the command.
const (
	verdictReady    = "ready"
	verdictDegraded = "degraded"
	verdictBroken   = "broken"
)

type doctorCheck struct {
	Name   string     `json:"name"`
	Level  checkLevel `json:"level"`
	Detail string     `json:"detail"`
	Fix    string     `json:"fix,omitempty"`
}

type browserInfo struct {
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type hostInfo struct {
	Platform  string `json:"platform"`
	Container string `json:"container,omitempty"` // the signal that gave it away
	CI        bool   `json:"ci"`
}

// doctorReport is what `html2doc doctor` prints, as text or JSON.
type doctorReport struct {
	Verdict string        `json:"verdict"`
	Outputs []string      `json:"outputs"`
	Checks  []doctorCheck `json:"checks"`
	Browser *browserInfo  `json:"browser,omitempty"` // nil without a usable browser
	Host    hostInfo      `json:"host"`
}

// Browser lookups, replaced in tests.
var (
	lookBrowser    = launcher.LookPath
	browserVersion = func(path string) (string, error) {
		out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
		return strings.TrimSpace(string(out)), err
	}
)

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// runDoctorCmd prints the report and exits 1 when a check fails. A missing
// browser only degrades the setup: HTML and Markdown still convert.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return report(env, fmt.Errorf("%w: %v", config.ErrInvalidValue, err))
	}

	rep := diagnose(env.Getenv)

	if *asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	} else {
		printDoctorReport(env.Stdout, rep)
	}

	if rep.Verdict == verdictBroken {
		return ExitGeneral
	}
	return ExitSuccess
}

func diagnose(getenv func(string) string) *doctorReport {
	rep := &doctorReport{
		Host: hostInfo{Platform: runtime.GOOS + "/" + runtime.GOARCH},
	}
	rep.Host.Container = containerSignal(getenv)
	for _, v := range ciVars {
		if getenv(v) != "" {
			rep.Host.CI = true
			break
		}
	}

	rep.add(checkBrowser(rep, getenv("ROD_BROWSER_BIN")))
	rep.add(checkSandbox(rep, getenv("ROD_NO_SANDBOX") == "1"))
	rep.add(checkTempDir())
	rep.add(checkStyles())

	rep.Outputs = []string{config.FormatHTML, config.FormatMarkdown}
	if rep.Browser != nil {
		rep.Outputs = append(rep.Outputs, config.FormatPDF)
	}

	rep.Verdict = verdictReady
	for _, c := range rep.Checks {
		switch c.Level {
		case levelFail:
			rep.Verdict = verdictBroken
		case levelWarn:
			if rep.Verdict == verdictReady {
				rep.Verdict = verdictDegraded
			}
		}
	}
	return rep
}

func (r *doctorReport) add(c doctorCheck) { r.Checks = append(r.Checks, c) }

// checkBrowser resolves the browser PDF output would launch: ROD_BROWSER_BIN
// when set, rod's lookup otherwise.
func checkBrowser(rep *doctorReport, override string) doctorCheck {
	c := doctorCheck{Name: "browser"}

	path := override
	if path == "" {
		var ok bool
		if path, ok = lookBrowser(); !ok {
			c.Level = levelWarn
			c.Detail = "no Chrome or Chromium found, PDF output disabled"
			c.Fix = "install Chromium or point ROD_BROWSER_BIN at a browser"
			return c
		}
	}
	if !fileutil.FileExists(path) {
		c.Level = levelWarn
		c.Detail = path + " does not exist, PDF output disabled"
		c.Fix = "check ROD_BROWSER_BIN"
		return c
	}

	rep.Browser = &browserInfo{Path: path}
	v, err := browserVersion(path)
	if err != nil {
		c.Level = levelWarn
		c.Detail = fmt.Sprintf("%s (version unknown: %v)", path, err)
		return c
	}
	rep.Browser.Version = v
	c.Level = levelOK
	c.Detail = fmt.Sprintf("%s (%s)", path, v)
	return c
}

// checkSandbox flags containers and CI runners where Chrome's sandbox
// usually cannot start.
func checkSandbox(rep *doctorReport, disabled bool) doctorCheck {
	c := doctorCheck{Name: "sandbox", Level: levelOK, Detail: "enabled"}
	if rep.Browser != nil {
		rep.Browser.Sandbox = !disabled
	}
	if disabled {
		c.Detail = "disabled by ROD_NO_SANDBOX=1"
		return c
	}

	var where string
	switch {
	case rep.Host.Container != "":
		where = "container (" + rep.Host.Container + ")"
	case rep.Host.CI:
		where = "CI runner"
	default:
		return c
	}
	c.Level = levelWarn
	c.Detail = "enabled inside a " + where
	c.Fix = "set ROD_NO_SANDBOX=1"
	return c
}

// checkTempDir writes a throwaway page where PDF rendering puts its own.
func checkTempDir() doctorCheck {
	c := doctorCheck{Name: "temp dir", Level: levelOK, Detail: os.TempDir() + " writable"}
	_, cleanup, err := fileutil.WriteTempFile("<p>doctor</p>", "html")
	if err != nil {
		c.Level = levelFail
		c.Detail = fmt.Sprintf("%s not writable: %v", os.TempDir(), err)
		c.Fix = "set TMPDIR to a writable directory"
		return c
	}
	cleanup()
	return c
}

func checkStyles() doctorCheck {
	names := assets.NewEmbeddedLoader().Names()
	if len(names) == 0 {
		return doctorCheck{Name: "stylesheets", Level: levelFail, Detail: "none embedded in this build"}
	}
	return doctorCheck{Name: "stylesheets", Level: levelOK, Detail: strings.Join(names, ", ")}
}

// containerSignal names the first hint that we run in a container, or "".
func containerSignal(getenv func(string) string) string {
	switch {
	case getenv("HTML2DOC_CONTAINER") == "1":
		return "HTML2DOC_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return "/.dockerenv"
	case getenv("container") != "":
		return "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		return "KUBERNETES_SERVICE_HOST"
	}
	return ""
}

func printDoctorReport(w io.Writer, rep *doctorReport) {
	fmt.Fprintf(w, "html2doc doctor (%s)\n\n", rep.Host.Platform)
	for _, c := range rep.Checks {
		fmt.Fprintf(w, "  %-4s  %-11s  %s\n", c.Level, c.Name, c.Detail)
		if c.Fix != "" {
			fmt.Fprintf(w, "  %-4s  %-11s  fix: %s\n", "", "", c.Fix)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "outputs: %s\n", strings.Join(rep.Outputs, ", "))
	fmt.Fprintf(w, "verdict: %s\n", rep.Verdict)
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check what this machine can convert to: browser, sandbox, temp dir")
	fmt.Fprintln(w, "and stylesheets. Exits 1 when a check fails; warnings exit 0.")
}
