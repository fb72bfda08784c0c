package lang

import "log/slog"

// Syntax describes the lexical conventions of a language that matter when
// validating compiled code.
type Syntax struct {
	// CommentDelimiters are the prefixes that begin a comment line.
	CommentDelimiters []string
	// CommonCodeParts are tokens that legitimately appear alone on many lines,
	// such as block delimiters, and are exempt from duplicate detection.
	CommonCodeParts []string
}

// Syntax returns the syntax conventions of l.
func (l Language) Syntax() (Syntax, error) {
	switch l {
	case ShellScript:
		return Syntax{
			CommentDelimiters: []string{"#"},
			CommonCodeParts:   []string{"(", ")", "else", "fi", "done", "esac", "}"},
		}, nil

	case BatchFile:
		return Syntax{
			CommentDelimiters: []string{"REM", "::"},
			CommonCodeParts:   []string{"(", ")", "else", ") else ("},
		}, nil

	default:
		return Syntax{}, ErrUnsupportedLanguage.With(slog.String("language", l.String()))
	}
}
