package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2doc/internal/render"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --output
	Short  string   // -o (empty if none)
	Desc   string   // help text
	Values []string // fixed choices, if any
	Dir    bool     // completes directories
	Files  string   // glob for file arguments
	IsBool bool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta maps flag names to their completion hints.
// Flag names and descriptions come from the FlagSet.
var completionMeta = map[string]flagDef{
	"format":     {Values: []string{"html", "markdown"}},
	"to":         {Values: []string{"html", "markdown", "pdf"}},
	"log-format": {Values: []string{"text", "json"}},
	"config":     {Files: "*.yaml"},
	"output":     {Dir: true},
	"asset-path": {Dir: true},
	"css-dir":    {Dir: true},
}

// convertCompletionFlags extracts the convert flags from the real FlagSet.
func convertCompletionFlags() []flagDef {
	fs := newConvertFlagSet(&convertFlags{})

	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := completionMeta[f.Name]
		fd.Long = f.Name
		fd.Short = f.Shorthand
		fd.Desc = f.Usage
		fd.IsBool = f.Value.Type() == "bool"
		if f.Name == "highlight" {
			fd.Values = render.HighlightStyles()
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "convert", Desc: "Convert HTML or Markdown pages", Flags: convertCompletionFlags()},
		{Name: "styles", Desc: "List or print styles"},
		{Name: "config", Desc: "Print the effective configuration"},
		{Name: "doctor", Desc: "Check the environment for PDF output"},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# bash completion for html2doc\n")
	b.WriteString("_html2doc() {\n")
	b.WriteString("  local cur prev\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  case \"$prev\" in\n")
	for _, f := range cmds[0].Flags {
		switch {
		case len(f.Values) > 0:
			fmt.Fprintf(&b, "    --%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", f.Long, strings.Join(f.Values, " "))
		case f.Dir:
			fmt.Fprintf(&b, "    --%s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", f.Long)
		}
	}
	b.WriteString("  esac\n")
	b.WriteString("  if [[ $COMP_CWORD -eq 1 && \"$cur\" != -* ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("    return\n")
	b.WriteString("  fi\n")
	b.WriteString("  if [[ \"$cur\" == -* ]]; then\n")
	var longs []string
	for _, f := range cmds[0].Flags {
		longs = append(longs, "--"+f.Long)
	}
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(longs, " "))
	b.WriteString("    return\n")
	b.WriteString("  fi\n")
	b.WriteString("  COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _html2doc html2doc\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("#compdef html2doc\n\n")
	b.WriteString("_html2doc() {\n")
	b.WriteString("  local -a commands\n")
	b.WriteString("  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n")
	b.WriteString("  _arguments -s \\\n")
	for _, f := range cmds[0].Flags {
		action := ""
		switch {
		case len(f.Values) > 0:
			action = ":value:(" + strings.Join(f.Values, " ") + ")"
		case f.Dir:
			action = ":directory:_directories"
		case f.Files != "":
			action = ":file:_files -g '" + f.Files + "'"
		case !f.IsBool:
			action = ":value:"
		}
		fmt.Fprintf(&b, "    '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), action)
	}
	b.WriteString("    '1: :->first' \\\n")
	b.WriteString("    '*:file:_files'\n")
	b.WriteString("  [[ $state == first ]] && { _describe 'command' commands; _files }\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _html2doc html2doc\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	b.WriteString("# fish completion for html2doc\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c html2doc -n __fish_use_subcommand -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, f := range cmds[0].Flags {
		line := "complete -c html2doc -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		if len(f.Values) > 0 {
			line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
		} else if !f.IsBool {
			line += " -r"
		}
		line += fmt.Sprintf(" -d %q\n", f.Desc)
		b.WriteString(line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(html2doc completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(html2doc completion zsh)\"    # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  html2doc completion fish > ~/.config/fish/completions/html2doc.fish")
}
