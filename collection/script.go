package collection

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/scriptgen/lang"
	"github.com/ardnew/scriptgen/pkg"
)

// Level is how strongly a script is recommended.
type Level int

const (
	// LevelNone scripts are never selected by a recommendation level.
	LevelNone Level = iota
	// LevelStandard scripts are safe for most users.
	LevelStandard
	// LevelStrict scripts trade functionality for privacy.
	LevelStrict
)

var levelNames = []string{"none", "standard", "strict"}

// String returns the identifier used in collection files.
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}

	return "unknown"
}

// Levels returns all recommendation level identifiers.
func Levels() []string { return slices.Clone(levelNames) }

// ParseLevel returns the Level named by s. An empty string is [LevelNone].
func ParseLevel(s string) (Level, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	if id == "" {
		return LevelNone, nil
	}

	if i := slices.Index(levelNames, id); i >= 0 {
		return Level(i), nil
	}

	return LevelNone, ErrInvalidRecommendation.
		With(slog.String("recommend", s)).
		Wrapf("%q (expected one of: %s)", s, strings.Join(levelNames, ", "))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

// Includes reports whether a script recommended at s is selected when
// choosing scripts at level l.
func (l Level) Includes(s Level) bool {
	return s != LevelNone && s <= l
}

// Script is a named unit of executable code with optional revert code.
type Script struct {
	Name              string
	DocumentationURLs []string
	Code              string
	RevertCode        string
	Level             Level
}

// ParseScript validates data and compiles its code.
//
// A script defines exactly one of literal code or a call sequence. Calls
// are expanded with the context's compiler and function registry.
// The resulting code must be non-empty and free of duplicate lines.
func ParseScript(data *ScriptData, ctx *ParseContext) (*Script, error) {
	if data == nil {
		return nil, ErrInvalidArgument.Wrapf("undefined script")
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	if data.Name == "" {
		return nil, ErrMissingName.Wrapf("script has no name")
	}

	attr := slog.String("script", data.Name)

	level, err := ParseLevel(data.Recommend)
	if err != nil {
		return nil, pkg.WrapError(err).With(attr)
	}

	code, revert, err := scriptCode(data, ctx)
	if err != nil {
		return nil, pkg.WrapError(err).With(attr)
	}

	switch {
	case code == "":
		return nil, ErrEmptyCode.With(attr).
			Wrapf("script %q has no code", data.Name)

	case code == revert:
		return nil, ErrRevertEqualsCode.With(attr).
			Wrapf("script %q: revert code is identical to code", data.Name)
	}

	if err := checkDuplicateLines(code, ctx.Syntax); err != nil {
		return nil, pkg.WrapError(err).With(attr, slog.String("field", "code"))
	}

	if err := checkDuplicateLines(revert, ctx.Syntax); err != nil {
		return nil, pkg.WrapError(err).With(attr, slog.String("field", "revertCode"))
	}

	ctx.logger.Trace("parsed script",
		attr,
		slog.Int("code_bytes", len(code)),
		slog.Int("revert_bytes", len(revert)),
		slog.String("level", level.String()),
	)

	return &Script{
		Name:              data.Name,
		DocumentationURLs: slices.Clone([]string(data.Docs)),
		Code:              code,
		RevertCode:        revert,
		Level:             level,
	}, nil
}

func scriptCode(data *ScriptData, ctx *ParseContext) (code, revert string, err error) {
	hasCode, hasCall := data.Code != "", len(data.Call) > 0

	switch {
	case hasCode && hasCall:
		return "", "", ErrInvalidScriptDefinition.
			Wrapf("script %q has both code and call", data.Name)

	case hasCode:
		return data.Code, data.RevertCode, nil

	case hasCall:
		if data.RevertCode != "" {
			return "", "", ErrInvalidScriptDefinition.
				Wrapf("script %q has both call and revert code", data.Name)
		}

		calls, err := parseCalls(data.Call)
		if err != nil {
			return "", "", err
		}

		compiled, err := ctx.Compiler.Compile(calls, ctx.Functions)
		if err != nil {
			return "", "", err
		}

		return compiled.Code, compiled.RevertCode, nil

	default:
		return "", "", ErrInvalidScriptDefinition.
			Wrapf("script %q has neither code nor call", data.Name)
	}
}

// checkDuplicateLines reports lines of code that occur more than once.
// Blank lines, comment lines, and lines holding only a common code part
// of the syntax are ignored.
func checkDuplicateLines(code string, syntax lang.Syntax) error {
	seen := make(map[string]struct{})

	var dups []string

	for line := range strings.Lines(code) {
		line = strings.TrimSpace(line)
		if line == "" || slices.Contains(syntax.CommonCodeParts, line) {
			continue
		}

		if slices.ContainsFunc(syntax.CommentDelimiters, func(d string) bool {
			return strings.HasPrefix(line, d)
		}) {
			continue
		}

		if _, ok := seen[line]; ok {
			if !slices.Contains(dups, line) {
				dups = append(dups, line)
			}

			continue
		}

		seen[line] = struct{}{}
	}

	if len(dups) == 0 {
		return nil
	}

	return ErrDuplicateLine.
		With(slog.Any("lines", dups)).
		Wrapf(`code has duplicate line(s): "%s"`, strings.Join(dups, `", "`))
}
