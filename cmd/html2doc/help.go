package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert HTML or Markdown pages (default command)")
	fmt.Fprintln(w, "  styles      List stylesheets and highlight styles, or print one")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  doctor      Check the environment for PDF output")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2doc help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML or Markdown pages into clean HTML, Markdown or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --to <list>           Output formats: html, markdown, pdf (default: html)")
	fmt.Fprintln(w, "  -f, --format <s>          Input format: html, markdown (default: by extension)")
	fmt.Fprintln(w, "  -s, --selector <css>      Content element, e.g. article or main")
	fmt.Fprintln(w, "      --url <url>           Origin URL stored in the document (single input)")
	fmt.Fprintln(w, "      --title <s>           Title override (single input)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <list>        Stylesheet names, paths or URLs")
	fmt.Fprintln(w, "      --no-style            Render without stylesheets")
	fmt.Fprintln(w, "      --css-dir <dir>       Directory pages link named styles from")
	fmt.Fprintln(w, "      --publish-css         Copy named styles next to the HTML output")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles directory")
	fmt.Fprintln(w, "      --highlight <style>   Chroma style for code blocks")
	fmt.Fprintln(w, "      --lang <tag>          html lang attribute")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --root-paragraphs     Wrap loose top-level text in paragraphs")
	fmt.Fprintln(w, "      --lang-from-class     Read code languages from language-* classes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs, timings and sizes")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w, "      --dump                Print each document tree")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2DOC_CONFIG, HTML2DOC_FORMATS, HTML2DOC_TIMEOUT, HTML2DOC_INPUT_DIR,")
	fmt.Fprintln(w, "  HTML2DOC_OUTPUT_DIR, HTML2DOC_SELECTOR, HTML2DOC_STYLE, HTML2DOC_LANG,")
	fmt.Fprintln(w, "  HTML2DOC_HIGHLIGHT, HTML2DOC_WORKERS, HTML2DOC_LOG_FORMAT")
}

func printStylesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc styles [--asset-path <dir>] [name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a name, list the stylesheets and the highlight styles.")
	fmt.Fprintln(w, "With a name, print that stylesheet's CSS.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --asset-path <dir>    Also list styles from <dir>/styles/*.css")
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2doc config [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a conversion would use, as YAML:")
	fmt.Fprintln(w, "defaults, then the config file, then HTML2DOC_* variables.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "styles":
		printStylesUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2doc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2doc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
