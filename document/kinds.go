package document

import (
	"fmt"
	"strings"
)

// HeadingLevel is the rank of a heading, H1 through H6.
type HeadingLevel uint8

const (
	H1 HeadingLevel = iota + 1
	H2
	H3
	H4
	H5
	H6
)

// String returns the HTML tag name for the level ("h1".."h6").
func (l HeadingLevel) String() string {
	if l < H1 || l > H6 {
		return fmt.Sprintf("HeadingLevel(%d)", uint8(l))
	}
	return "h" + string(rune('0'+l))
}

// HeadingLevelFromTag maps "h1".."h6" to a level.
// The second result is false for any other tag.
func HeadingLevelFromTag(tag string) (HeadingLevel, bool) {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0, false
	}
	return HeadingLevel(tag[1] - '0'), true
}

// ListKind distinguishes ordered from unordered lists.
type ListKind uint8

const (
	Unordered ListKind = iota
	Ordered
)

// Tag returns "ul" or "ol".
func (k ListKind) Tag() string {
	if k == Ordered {
		return "ol"
	}
	return "ul"
}

func (k ListKind) String() string {
	if k == Ordered {
		return "Ordered"
	}
	return "Unordered"
}

// CodeLang tags the language of a code block. The converter produces
// LangUnknown unless asked to read language-* classes; other values come from
// callers building documents directly.
type CodeLang string

const (
	LangUnknown CodeLang = ""
	LangGo      CodeLang = "go"
	LangRust    CodeLang = "rust"
	LangShell   CodeLang = "shell"
)

// Known reports whether the language is set.
func (c CodeLang) Known() bool {
	return c != LangUnknown
}

var langAliases = map[string]CodeLang{
	"golang":  LangGo,
	"rs":      LangRust,
	"sh":      LangShell,
	"bash":    LangShell,
	"zsh":     LangShell,
	"console": LangShell,
}

// ParseCodeLang normalizes a language name as found in markup
// ("language-go", "Rust", "bash"). Blank input yields LangUnknown.
func ParseCodeLang(name string) CodeLang {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "language-")
	name = strings.TrimPrefix(name, "lang-")
	if lang, ok := langAliases[name]; ok {
		return lang
	}
	return CodeLang(name)
}
