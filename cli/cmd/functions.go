package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/scriptgen/function"
)

// Functions prints the shared functions of a collection with their
// parameters. Optional parameters are shown in brackets.
type Functions struct {
	Source `embed:""`
}

// Run executes the functions command.
func (f *Functions) Run(ctx context.Context) error {
	coll, err := f.load(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	st := newStyles(w)

	for fn := range coll.Functions.All() {
		params := make([]string, len(fn.Parameters))
		for i, p := range fn.Parameters {
			name := p.Name
			if !p.Required {
				name = "[" + name + "]"
			}

			params[i] = st.param.Render(name)
		}

		line := st.function.Render(fn.Name) + "(" + strings.Join(params, ", ") + ")"

		if calls := fn.Body.Calls; len(calls) > 0 {
			line += " " + st.faint.Render("-> "+strings.Join(callNames(calls), ", "))
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func callNames(calls []*function.Call) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.FunctionName
	}

	return names
}
