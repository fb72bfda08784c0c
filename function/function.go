package function

import (
	"log/slog"

	"github.com/ardnew/scriptgen/expression"
	"github.com/ardnew/scriptgen/pkg"
)

// ErrDuplicateParameter is returned when a function declares the same
// parameter name more than once.
var ErrDuplicateParameter = pkg.NewError("duplicate parameter")

// Parameter is a declared function parameter.
type Parameter struct {
	Name     string
	Required bool
}

// Code is the inline body of a function: a do template and an optional
// revert template.
type Code struct {
	Do     string
	Revert string
}

// Body is exactly one of an inline [Code] or a composite call sequence.
type Body struct {
	Code  *Code
	Calls []*Call
}

// Inline reports whether b holds inline code.
func (b Body) Inline() bool { return b.Code != nil }

// SharedFunction is a named, parameterized, reusable unit of code.
type SharedFunction struct {
	Name       string
	Parameters []Parameter
	Body       Body
}

// New returns a validated SharedFunction.
func New(name string, params []Parameter, body Body) (*SharedFunction, error) {
	if name == "" {
		return nil, pkg.ErrInvalidArgument.Wrapf("function has no name")
	}

	seen := make(map[string]struct{}, len(params))

	for _, p := range params {
		if p.Name == "" {
			return nil, pkg.ErrInvalidArgument.
				With(slog.String("function", name)).
				Wrapf("function %q has a parameter with no name", name)
		}

		if !expression.IsParameterName(p.Name) {
			return nil, pkg.ErrInvalidArgument.
				With(slog.String("function", name), slog.String("parameter", p.Name)).
				Wrapf("function %q parameter %q is not a valid name: "+
					"use letters, digits, and underscores, not starting with a digit",
					name, p.Name)
		}

		if _, dup := seen[p.Name]; dup {
			return nil, ErrDuplicateParameter.
				With(slog.String("function", name), slog.String("parameter", p.Name)).
				Wrapf("function %q declares parameter %q more than once", name, p.Name)
		}

		seen[p.Name] = struct{}{}
	}

	if (body.Code == nil) == (body.Calls == nil) {
		return nil, pkg.ErrInvalidArgument.
			With(slog.String("function", name)).
			Wrapf("function %q must have exactly one of code or calls", name)
	}

	for _, call := range body.Calls {
		if call == nil {
			return nil, pkg.ErrInvalidArgument.
				With(slog.String("function", name)).
				Wrapf("function %q has an undefined call", name)
		}
	}

	return &SharedFunction{Name: name, Parameters: params, Body: body}, nil
}

// ParameterNames returns the declared parameter names in order.
func (f *SharedFunction) ParameterNames() []string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Name
	}

	return names
}

// Call is an invocation of a shared function by name.
type Call struct {
	FunctionName string
	Arguments    Arguments
}

// NewCall returns a Call to the named function with args.
func NewCall(name string, args Arguments) *Call {
	return &Call{FunctionName: name, Arguments: args}
}

// CompiledCode is the result of expanding a call sequence.
// Either field may be empty.
type CompiledCode struct {
	Code       string
	RevertCode string
}
