// Package lang identifies the scripting languages scriptgen can target and
// describes the syntax conventions the parsers need to know about them.
package lang

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/scriptgen/pkg"
)

// ErrUnsupportedLanguage is returned for an unrecognized language identifier.
var ErrUnsupportedLanguage = pkg.NewError("unsupported scripting language")

// Language is a target scripting dialect.
type Language int

const (
	// Unknown is the zero Language and is never valid.
	Unknown Language = iota
	// ShellScript is a POSIX shell script.
	ShellScript
	// BatchFile is a Windows batch file.
	BatchFile
)

var names = map[Language]string{
	ShellScript: "shellscript",
	BatchFile:   "batchfile",
}

// String returns the identifier used in collection files and CLI flags.
func (l Language) String() string {
	if name, ok := names[l]; ok {
		return name
	}

	return "unknown"
}

// Languages returns an iterator over all supported language identifiers.
func Languages() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range []Language{ShellScript, BatchFile} {
			if !yield(l.String()) {
				return
			}
		}
	}
}

// Parse returns the Language named by s. Matching ignores case and
// surrounding whitespace.
func Parse(s string) (Language, error) {
	id := strings.ToLower(strings.TrimSpace(s))

	for l, name := range names {
		if name == id {
			return l, nil
		}
	}

	return Unknown, ErrUnsupportedLanguage.
		With(slog.String("language", s)).
		Wrapf("%q (expected one of: %s)", s,
			strings.Join(slices.Collect(Languages()), ", "))
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := names[l]

	return ok
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, ErrUnsupportedLanguage.With(slog.Int("language", int(l)))
	}

	return []byte(l.String()), nil
}

// FileExtension returns the conventional file extension, without the dot.
func (l Language) FileExtension() string {
	switch l {
	case ShellScript:
		return "sh"
	case BatchFile:
		return "bat"
	default:
		return ""
	}
}
