package collection

import (
	"github.com/ardnew/scriptgen/function"
	"github.com/ardnew/scriptgen/lang"
	"github.com/ardnew/scriptgen/log"
	"github.com/ardnew/scriptgen/pkg"
)

// CallCompiler expands function calls into code.
// [function.Compiler] is the standard implementation.
type CallCompiler interface {
	Compile(calls []*function.Call, registry *function.Registry) (function.CompiledCode, error)
}

// ParseContext carries the state shared by every script and category of a
// collection while it is parsed. A ParseContext is not safe for concurrent
// use.
type ParseContext struct {
	Compiler  CallCompiler
	Functions *function.Registry
	Syntax    lang.Syntax

	logger log.Logger
	lastID int
}

type options struct {
	logger   log.Logger
	compiler CallCompiler
	noCache  bool
}

// Option configures parsing and loading.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCallCompiler replaces the default [function.Compiler].
// Loading with a custom compiler bypasses the parse cache.
func WithCallCompiler(c CallCompiler) Option {
	return func(o *options) {
		o.compiler = c
	}
}

// WithoutCache makes [Load] parse the input even if an identical source
// was loaded before.
func WithoutCache() Option {
	return func(o *options) {
		o.noCache = true
	}
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// NewParseContext parses functions into a registry and returns a context
// for parsing scripts written in a language with the given syntax.
func NewParseContext(
	functions []*FunctionData,
	syntax lang.Syntax,
	opts ...Option,
) (*ParseContext, error) {
	o := makeOptions(opts...)

	registry, err := ParseFunctions(functions)
	if err != nil {
		return nil, err
	}

	compiler := o.compiler
	if compiler == nil {
		compiler = function.NewCompiler(function.WithLogger(o.logger))
	}

	return &ParseContext{
		Compiler:  compiler,
		Functions: registry,
		Syntax:    syntax,
		logger:    o.logger,
	}, nil
}

// nextID returns the next category identifier, starting from 1.
func (ctx *ParseContext) nextID() int {
	ctx.lastID++

	return ctx.lastID
}

func checkContext(ctx *ParseContext) error {
	if ctx == nil {
		return pkg.ErrInvalidArgument.Wrapf("undefined context")
	}

	if ctx.Compiler == nil || ctx.Functions == nil {
		return pkg.ErrInvalidArgument.Wrapf("incomplete context")
	}

	return nil
}
