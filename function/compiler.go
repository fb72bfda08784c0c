package function

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/scriptgen/expression"
	"github.com/ardnew/scriptgen/log"
	"github.com/ardnew/scriptgen/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidArgument   = pkg.ErrInvalidArgument
	ErrParameterMismatch = pkg.NewError("parameter mismatch")
	ErrCyclicFunction    = pkg.NewError("cyclic function call")
	ErrMaxDepthExceeded  = pkg.NewError("maximum call depth exceeded")
)

// DefaultMaxDepth is the default limit on nested call expansion.
const DefaultMaxDepth = 64

// Order selects how revert fragments are merged.
type Order int

const (
	// ForwardOrder merges revert fragments in expansion order.
	ForwardOrder Order = iota
	// ReverseOrder merges revert fragments last to first, so that the
	// revert of the last applied change runs first.
	ReverseOrder
)

// Compiler expands function calls into code.
// A Compiler is safe for concurrent use.
type Compiler struct {
	expr        *expression.Compiler
	logger      log.Logger
	maxDepth    int
	revertOrder Order
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

// WithExpressionCompiler sets the compiler used to substitute arguments.
func WithExpressionCompiler(ec *expression.Compiler) Option {
	return func(c *Compiler) {
		if ec != nil {
			c.expr = ec
		}
	}
}

// WithMaxDepth limits how deeply composite functions may nest.
// Values less than 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(c *Compiler) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithRevertOrder sets the merge order of revert fragments.
func WithRevertOrder(order Order) Option {
	return func(c *Compiler) {
		c.revertOrder = order
	}
}

// NewCompiler returns a Compiler with the given options applied.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(c)
	}

	if c.expr == nil {
		c.expr = expression.NewCompiler(expression.WithLogger(c.logger))
	}

	return c
}

// Compile expands calls against registry and merges the resulting code.
//
// Calls are expanded in order, and composite functions depth-first and
// left to right. Empty and whitespace-only fragments are dropped and the
// rest joined by newlines. Any error aborts the whole compilation.
func (c *Compiler) Compile(calls []*Call, registry *Registry) (CompiledCode, error) {
	if registry == nil {
		return CompiledCode{}, ErrInvalidArgument.Wrapf("undefined functions")
	}

	if calls == nil {
		return CompiledCode{}, ErrInvalidArgument.Wrapf("undefined calls")
	}

	if slices.Contains(calls, nil) {
		return CompiledCode{}, ErrInvalidArgument.Wrapf("undefined function call")
	}

	var parts []CompiledCode

	for _, call := range calls {
		compiled, err := c.compileCall(call, registry, nil)
		if err != nil {
			return CompiledCode{}, err
		}

		parts = append(parts, compiled...)
	}

	code := make([]string, len(parts))
	revert := make([]string, len(parts))

	for i, part := range parts {
		code[i] = part.Code
		revert[i] = part.RevertCode
	}

	if c.revertOrder == ReverseOrder {
		slices.Reverse(revert)
	}

	return CompiledCode{Code: merge(code), RevertCode: merge(revert)}, nil
}

// compileCall expands a single call. stack holds the names of the
// functions currently being expanded, outermost first.
func (c *Compiler) compileCall(
	call *Call,
	registry *Registry,
	stack []string,
) ([]CompiledCode, error) {
	fn, err := registry.Get(call.FunctionName)
	if err != nil {
		return nil, err
	}

	if slices.Contains(stack, fn.Name) {
		chain := strings.Join(append(slices.Clone(stack), fn.Name), " -> ")

		return nil, ErrCyclicFunction.
			With(slog.String("chain", chain)).
			Wrapf("function %q calls itself: %s", fn.Name, chain)
	}

	if len(stack) >= c.maxDepth {
		return nil, ErrMaxDepthExceeded.
			With(slog.String("function", fn.Name), slog.Int("depth", c.maxDepth)).
			Wrapf("calls nested deeper than %d at function %q", c.maxDepth, fn.Name)
	}

	stack = append(slices.Clip(stack), fn.Name)

	if err := checkArguments(fn, call.Arguments); err != nil {
		return nil, err
	}

	args := bindOptional(fn, call.Arguments)

	c.logger.Trace("expand call",
		slog.String("function", fn.Name),
		slog.Int("depth", len(stack)),
		slog.Any("arguments", args.Names()),
	)

	if fn.Body.Inline() {
		compiled, err := c.compileCode(fn, args)
		if err != nil {
			return nil, err
		}

		return []CompiledCode{compiled}, nil
	}

	var parts []CompiledCode

	for _, inner := range fn.Body.Calls {
		innerArgs, err := c.compileArguments(fn, inner.Arguments, args)
		if err != nil {
			return nil, err
		}

		compiled, err := c.compileCall(
			NewCall(inner.FunctionName, innerArgs), registry, stack)
		if err != nil {
			return nil, err
		}

		parts = append(parts, compiled...)
	}

	return parts, nil
}

func (c *Compiler) compileCode(fn *SharedFunction, args Arguments) (CompiledCode, error) {
	code, err := c.expr.Compile(fn.Body.Code.Do, args)
	if err != nil {
		return CompiledCode{}, pkg.WrapError(err).With(slog.String("function", fn.Name))
	}

	revert, err := c.expr.Compile(fn.Body.Code.Revert, args)
	if err != nil {
		return CompiledCode{}, pkg.WrapError(err).With(slog.String("function", fn.Name))
	}

	return CompiledCode{Code: code, RevertCode: revert}, nil
}

// compileArguments resolves each expression in inner against the calling
// function's arguments.
func (c *Compiler) compileArguments(
	caller *SharedFunction,
	inner Arguments,
	outer Arguments,
) (Arguments, error) {
	compiled := make([]Argument, 0, inner.Len())

	for name, value := range inner.All() {
		v, err := c.expr.Compile(value, outer)
		if err != nil {
			return Arguments{}, pkg.WrapError(err).
				With(slog.String("function", caller.Name), slog.String("parameter", name))
		}

		compiled = append(compiled, Argument{Name: name, Value: v})
	}

	return NewArguments(compiled...)
}

// checkArguments verifies that every argument names a declared parameter.
func checkArguments(fn *SharedFunction, args Arguments) error {
	declared := fn.ParameterNames()

	var unexpected []string

	for _, name := range args.Names() {
		if !slices.Contains(declared, name) {
			unexpected = append(unexpected, name)
		}
	}

	if len(unexpected) == 0 {
		return nil
	}

	expected := "none"
	if len(declared) > 0 {
		expected = quoteList(declared)
	}

	return ErrParameterMismatch.
		With(slog.String("function", fn.Name), slog.Any("unexpected", unexpected)).
		Wrapf("function %q has unexpected parameter(s) provided: %s. "+
			"expected parameter(s): %s",
			fn.Name, quoteList(unexpected), expected)
}

// bindOptional binds every optional parameter absent from args to the
// empty string.
func bindOptional(fn *SharedFunction, args Arguments) Arguments {
	for _, p := range fn.Parameters {
		if p.Required {
			continue
		}

		if _, ok := args.Lookup(p.Name); !ok {
			args = args.with(p.Name, "")
		}
	}

	return args
}

// merge joins parts with newlines, dropping empty and whitespace-only parts.
func merge(parts []string) string {
	return strings.Join(slices.DeleteFunc(parts, func(s string) bool {
		return strings.TrimSpace(s) == ""
	}), "\n")
}

func quoteList(list []string) string {
	return `"` + strings.Join(list, `", "`) + `"`
}
