package codegen

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/scriptgen/lang"
)

// ErrUnsupportedLanguage is returned for a language without a dialect.
var ErrUnsupportedLanguage = lang.ErrUnsupportedLanguage

// hyphens is the width of section header and footer rules.
const hyphens = 58

// Dialect renders lines of a script in one scripting language. No returned
// line includes a trailing newline.
type Dialect interface {
	// Language returns the language this dialect renders.
	Language() lang.Language
	// Comment returns text as a comment line.
	Comment(text string) string
	// Code returns code with its line endings normalized to Newline.
	Code(code string) string
	// SectionHeader returns a comment line framing title with hyphens.
	SectionHeader(title string) string
	// Echo returns a command that writes text to standard output.
	Echo(text string) string
	// Newline returns the line terminator.
	Newline() string
}

// NewDialect returns the dialect for l.
func NewDialect(l lang.Language) (Dialect, error) {
	switch l {
	case lang.ShellScript:
		return Shell{}, nil
	case lang.BatchFile:
		return Batch{}, nil
	default:
		return nil, ErrUnsupportedLanguage.
			With(slog.String("language", l.String())).
			Wrapf("no code builder for language %q", l.String())
	}
}

// Shell is the POSIX shell dialect.
type Shell struct{}

// Language implements Dialect.
func (Shell) Language() lang.Language { return lang.ShellScript }

// Comment implements Dialect.
func (Shell) Comment(text string) string { return comment("#", text) }

// Code implements Dialect.
func (s Shell) Code(code string) string { return normalize(code, s.Newline()) }

// SectionHeader implements Dialect.
func (s Shell) SectionHeader(title string) string { return s.Comment(rule(title)) }

// Echo implements Dialect.
func (Shell) Echo(text string) string {
	return "echo '" + strings.ReplaceAll(text, "'", `'\''`) + "'"
}

// Newline implements Dialect.
func (Shell) Newline() string { return "\n" }

// Batch is the Windows batch file dialect.
type Batch struct{}

// batchEscaper escapes characters special to the batch echo command.
var batchEscaper = strings.NewReplacer(
	"^", "^^", "&", "^&", "|", "^|", "<", "^<", ">", "^>", "%", "%%",
)

// Language implements Dialect.
func (Batch) Language() lang.Language { return lang.BatchFile }

// Comment implements Dialect.
func (Batch) Comment(text string) string { return comment("::", text) }

// Code implements Dialect.
func (b Batch) Code(code string) string { return normalize(code, b.Newline()) }

// SectionHeader implements Dialect.
func (b Batch) SectionHeader(title string) string { return b.Comment(rule(title)) }

// Echo implements Dialect.
func (Batch) Echo(text string) string { return "echo " + batchEscaper.Replace(text) }

// Newline implements Dialect.
func (Batch) Newline() string { return "\r\n" }

func comment(delim, text string) string {
	if text == "" {
		return delim
	}

	return delim + " " + text
}

// rule centers title within a line of hyphens, measured in terminal cells.
// An empty title yields a plain rule; a title at least as wide as the rule is
// returned as is.
func rule(title string) string {
	if title == "" {
		return strings.Repeat("-", hyphens)
	}

	width := lipgloss.Width(title)
	if width >= hyphens {
		return title
	}

	pad := hyphens - width - 2
	if pad < 2 {
		return title
	}

	left := pad / 2

	return strings.Repeat("-", left) + " " + title + " " + strings.Repeat("-", pad-left)
}

// normalize rewrites every line ending in code to newline and trims
// trailing line endings.
func normalize(code, newline string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.TrimRight(code, "\n")

	if newline == "\n" {
		return code
	}

	return strings.ReplaceAll(code, "\n", newline)
}
