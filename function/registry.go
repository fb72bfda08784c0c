package function

import (
	"iter"
	"log/slog"

	"github.com/ardnew/scriptgen/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrDuplicateFunction = pkg.NewError("duplicate function")
	ErrFunctionNotFound  = pkg.NewError("function not found")
)

// Registry is a read-only collection of shared functions keyed by unique
// name. Iteration follows registration order.
type Registry struct {
	order  []string
	byName map[string]*SharedFunction
}

// NewRegistry returns a registry containing fns.
func NewRegistry(fns ...*SharedFunction) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(fns)),
		byName: make(map[string]*SharedFunction, len(fns)),
	}

	for _, fn := range fns {
		if fn == nil {
			return nil, pkg.ErrInvalidArgument.Wrapf("undefined function")
		}

		if _, dup := r.byName[fn.Name]; dup {
			return nil, ErrDuplicateFunction.
				With(slog.String("function", fn.Name)).
				Wrapf("function %q is defined more than once", fn.Name)
		}

		r.order = append(r.order, fn.Name)
		r.byName[fn.Name] = fn
	}

	return r, nil
}

// Get returns the function registered as name.
func (r *Registry) Get(name string) (*SharedFunction, error) {
	if fn, ok := r.byName[name]; ok {
		return fn, nil
	}

	return nil, ErrFunctionNotFound.
		With(slog.String("function", name)).
		Wrapf("called function is not defined: %q", name)
}

// Len returns the number of registered functions.
func (r *Registry) Len() int { return len(r.order) }

// All returns an iterator over the registered functions.
func (r *Registry) All() iter.Seq[*SharedFunction] {
	return func(yield func(*SharedFunction) bool) {
		for _, name := range r.order {
			if !yield(r.byName[name]) {
				return
			}
		}
	}
}
