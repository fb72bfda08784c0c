package function

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/ardnew/scriptgen/pkg"
)

// ErrDuplicateArgument is returned when an argument collection would bind
// the same parameter twice.
var ErrDuplicateArgument = pkg.NewError("duplicate argument")

// Argument binds a parameter name to an expression string.
type Argument struct {
	Name  string
	Value string
}

// Arguments is a read-only ordered collection of [Argument] values with
// unique parameter names. The zero value is an empty collection.
//
// Arguments implements [expression.Arguments].
type Arguments struct {
	list []Argument
}

// NewArguments returns a collection of args in the order given.
func NewArguments(args ...Argument) (Arguments, error) {
	list := make([]Argument, 0, len(args))

	for _, arg := range args {
		if arg.Name == "" {
			return Arguments{}, pkg.ErrInvalidArgument.Wrapf(
				"argument has no parameter name")
		}

		if slices.ContainsFunc(list, func(a Argument) bool {
			return a.Name == arg.Name
		}) {
			return Arguments{}, ErrDuplicateArgument.
				With(slog.String("parameter", arg.Name)).
				Wrapf("parameter %q is bound more than once", arg.Name)
		}

		list = append(list, arg)
	}

	return Arguments{list: list}, nil
}

// MustArguments is like [NewArguments] but panics on error.
// It is intended for tests and static tables.
func MustArguments(args ...Argument) Arguments {
	a, err := NewArguments(args...)
	if err != nil {
		panic(err)
	}

	return a
}

// Len returns the number of bound parameters.
func (a Arguments) Len() int { return len(a.list) }

// Names returns the bound parameter names in order.
func (a Arguments) Names() []string {
	names := make([]string, len(a.list))
	for i, arg := range a.list {
		names[i] = arg.Name
	}

	return names
}

// Lookup returns the expression bound to name.
func (a Arguments) Lookup(name string) (string, bool) {
	for _, arg := range a.list {
		if arg.Name == name {
			return arg.Value, true
		}
	}

	return "", false
}

// All returns an iterator over the bound parameter names and values.
func (a Arguments) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, arg := range a.list {
			if !yield(arg.Name, arg.Value) {
				return
			}
		}
	}
}

// with returns a copy of a with name bound to value, appended at the end.
// The caller guarantees name is not already bound.
func (a Arguments) with(name, value string) Arguments {
	return Arguments{list: append(slices.Clip(a.list), Argument{name, value})}
}
