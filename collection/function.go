package collection

import (
	"log/slog"

	"github.com/ardnew/scriptgen/function"
	"github.com/ardnew/scriptgen/pkg"
)

// ParseFunctions validates function definitions and returns a registry
// holding them. Every call made by a function must name a function in the
// same set. A nil or empty set yields an empty registry.
func ParseFunctions(data []*FunctionData) (*function.Registry, error) {
	fns := make([]*function.SharedFunction, 0, len(data))

	for _, d := range data {
		fn, err := parseFunction(d)
		if err != nil {
			return nil, err
		}

		fns = append(fns, fn)
	}

	registry, err := function.NewRegistry(fns...)
	if err != nil {
		return nil, err
	}

	for _, fn := range fns {
		for _, call := range fn.Body.Calls {
			if _, err := registry.Get(call.FunctionName); err != nil {
				return nil, pkg.WrapError(err).With(slog.String("caller", fn.Name))
			}
		}
	}

	return registry, nil
}

func parseFunction(d *FunctionData) (*function.SharedFunction, error) {
	if d == nil {
		return nil, ErrInvalidArgument.Wrapf("undefined function")
	}

	if d.Name == "" {
		return nil, ErrMissingName.Wrapf("function has no name")
	}

	attr := slog.String("function", d.Name)

	params := make([]function.Parameter, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = function.Parameter{Name: p.Name, Required: !p.Optional}
	}

	hasCode, hasCall := d.Code != "", len(d.Call) > 0

	var body function.Body

	switch {
	case hasCode && hasCall:
		return nil, ErrInvalidScriptDefinition.With(attr).
			Wrapf("function %q has both code and call", d.Name)

	case hasCode:
		if d.RevertCode == d.Code {
			return nil, ErrRevertEqualsCode.With(attr).
				Wrapf("function %q: revert code is identical to code", d.Name)
		}

		body.Code = &function.Code{Do: d.Code, Revert: d.RevertCode}

	case hasCall:
		if d.RevertCode != "" {
			return nil, ErrInvalidScriptDefinition.With(attr).
				Wrapf("function %q has both call and revert code", d.Name)
		}

		calls, err := parseCalls(d.Call)
		if err != nil {
			return nil, pkg.WrapError(err).With(attr)
		}

		body.Calls = calls

	default:
		return nil, ErrEmptyCode.With(attr).
			Wrapf("function %q has neither code nor call", d.Name)
	}

	return function.New(d.Name, params, body)
}

// parseCalls converts decoded calls into [function.Call] values.
func parseCalls(data CallData) ([]*function.Call, error) {
	calls := make([]*function.Call, len(data))

	for i, d := range data {
		if d == nil {
			return nil, ErrInvalidArgument.Wrapf("undefined function call")
		}

		if d.Function == "" {
			return nil, ErrMissingName.Wrapf("function call has no function name")
		}

		args := make([]function.Argument, len(d.Parameters))
		for j, p := range d.Parameters {
			args[j] = function.Argument{Name: p.Name, Value: p.Value}
		}

		a, err := function.NewArguments(args...)
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("function", d.Function))
		}

		calls[i] = function.NewCall(d.Function, a)
	}

	return calls, nil
}
