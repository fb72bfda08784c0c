package expression

import (
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/scriptgen/log"
	"github.com/ardnew/scriptgen/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrUnresolvedParameter = pkg.NewError("unresolved parameter")
	ErrInvalidPipeline     = pkg.NewError("invalid pipeline")
	ErrInvalidPlaceholder  = pkg.NewError("invalid placeholder")
)

// identifier is the grammar of a parameter name.
const identifier = `[A-Za-z_][A-Za-z0-9_]*`

var (
	// placeholder matches {{ $name }} and {{ $name | pipe | ... }}.
	placeholder = regexp.MustCompile(
		`\{\{\s*\$(` + identifier + `)\s*(\|[^}]*)?\}\}`,
	)
	// opening matches the start of anything meant as a placeholder.
	opening   = regexp.MustCompile(`\{\{\s*\$`)
	paramName = regexp.MustCompile(`^` + identifier + `$`)
)

// IsParameterName reports whether name can be referenced by a placeholder.
func IsParameterName(name string) bool {
	return paramName.MatchString(name)
}

// bareCall matches a pipe segment naming a function without parentheses.
var bareCall = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// valueName is the expr-lang identifier bound to the placeholder's value.
const valueName = "value"

// Compiler substitutes parameter placeholders in templates.
// A Compiler is safe for concurrent use.
type Compiler struct {
	pipes  map[string]any
	logger log.Logger
}

// Option configures a [Compiler].
type Option func(*Compiler)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithPipe registers an additional pipe function. fn receives the piped
// value as its first argument.
func WithPipe(name string, fn any) Option {
	return func(c *Compiler) {
		c.pipes[name] = fn
	}
}

// NewCompiler returns a Compiler with the builtin pipes and any options
// applied.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{pipes: Pipes()}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile replaces every placeholder in template with the expression bound
// to its parameter in args, piped through any declared functions.
//
// All unresolved parameters are reported together in a single
// [ErrUnresolvedParameter]. A template without placeholders is returned
// unchanged.
func (c *Compiler) Compile(template string, args Arguments) (string, error) {
	matches := placeholder.FindAllStringSubmatchIndex(template, -1)

	if err := checkWellFormed(template, matches); err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return template, nil
	}

	if args == nil {
		args = Map(nil)
	}

	err := checkResolved(template, matches, args)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	last := 0

	for _, m := range matches {
		name := template[m[2]:m[3]]
		value, _ := args.Lookup(name)

		if m[4] >= 0 {
			value, err = c.pipe(name, value, template[m[4]:m[5]])
			if err != nil {
				return "", err
			}
		}

		c.logger.Trace("substitute parameter",
			slog.String("parameter", name),
			slog.String("value", value),
		)

		sb.WriteString(template[last:m[0]])
		sb.WriteString(value)

		last = m[1]
	}

	sb.WriteString(template[last:])

	return sb.String(), nil
}

// checkWellFormed reports every placeholder opening in template that is not
// part of a complete placeholder.
func checkWellFormed(template string, matches [][]int) error {
	var bad []string

	for _, o := range opening.FindAllStringIndex(template, -1) {
		if slices.ContainsFunc(matches, func(m []int) bool {
			return o[0] >= m[0] && o[0] < m[1]
		}) {
			continue
		}

		end := strings.Index(template[o[0]:], "\n")
		if end < 0 {
			end = len(template) - o[0]
		}

		bad = append(bad, template[o[0]:o[0]+end])
	}

	if len(bad) == 0 {
		return nil
	}

	return ErrInvalidPlaceholder.
		With(slog.Any("placeholders", bad)).
		Wrapf("malformed placeholder(s): %s", quoteList(bad))
}

// checkResolved reports every placeholder parameter missing from args.
func checkResolved(template string, matches [][]int, args Arguments) error {
	var missing []string

	for _, m := range matches {
		name := template[m[2]:m[3]]
		if _, ok := args.Lookup(name); ok {
			continue
		}

		if !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return ErrUnresolvedParameter.
		With(slog.Any("parameters", missing)).
		Wrapf("no value provided for: %s", quoteList(missing))
}

// pipe evaluates the pipeline source (beginning with "|") applied to value.
func (c *Compiler) pipe(name, value, source string) (string, error) {
	segments, err := splitPipeline(strings.TrimPrefix(source, "|"))
	if err != nil {
		return "", ErrInvalidPipeline.
			With(slog.String("parameter", name)).
			Wrap(err)
	}

	for i, seg := range segments {
		if bareCall.MatchString(seg) {
			segments[i] = seg + "()"
		}
	}

	code := valueName + " | " + strings.Join(segments, " | ")

	env := maps.Clone(c.pipes)
	env[valueName] = value

	program, err := expr.Compile(code, expr.Env(env))
	if err != nil {
		return "", ErrInvalidPipeline.
			With(slog.String("parameter", name), slog.String("pipeline", code)).
			Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return "", ErrInvalidPipeline.
			With(slog.String("parameter", name), slog.String("pipeline", code)).
			Wrap(err)
	}

	if s, ok := out.(string); ok {
		return s, nil
	}

	return fmt.Sprint(out), nil
}

// splitPipeline splits s on "|" outside of quotes and parentheses.
func splitPipeline(s string) ([]string, error) {
	var (
		segments []string
		depth    int
		quote    rune
		escaped  bool
		start    int
	)

	for i, r := range s {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			switch r {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
		case r == '"' || r == '\'' || r == '`':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == '|' && depth == 0:
			segments = append(segments, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}

	if quote != 0 || depth != 0 {
		return nil, fmt.Errorf("unbalanced pipeline %q", s)
	}

	segments = append(segments, strings.TrimSpace(s[start:]))

	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("empty pipe in %q", s)
		}
	}

	return segments, nil
}

func quoteList(list []string) string {
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = `"` + s + `"`
	}

	return strings.Join(quoted, ", ")
}
