package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/scriptgen/codegen"
	"github.com/ardnew/scriptgen/collection"
	"github.com/ardnew/scriptgen/function"
	"github.com/ardnew/scriptgen/log"
)

// Compile generates a script from selected scripts of a collection.
type Compile struct {
	Source `embed:""`

	Script        []string `help:"Compile only the named script(s)."                               placeholder:"NAME" short:"s"`
	Recommend     string   `default:"all"         enum:"${recommendEnum}" help:"Select scripts by recommendation level." short:"r"`
	Revert        bool     `help:"Generate the revert script."`
	ReverseRevert bool     `help:"Merge revert code of composite functions last to first."`
	MaxDepth      int      `default:"${maxDepth}" help:"Maximum nesting of function calls."`
	Output        string   `default:"-"           help:"Output file or '-' for stdout."           short:"o"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) error {
	coll, err := c.load(ctx, c.options()...)
	if err != nil {
		return err
	}

	scripts, err := c.selectScripts(coll)
	if err != nil {
		return err
	}

	gen, err := codegen.NewGenerator(coll, codegen.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	text, err := gen.Generate(scripts, c.Revert)
	if err != nil {
		return err
	}

	if err := c.write(ctx, text); err != nil {
		return ErrWriteOutput.With(slog.String("output", c.Output)).Wrap(err)
	}

	log.DebugContext(ctx, "compiled collection",
		slog.String("os", coll.OS),
		slog.Int("scripts", len(scripts)),
		slog.Bool("revert", c.Revert),
		slog.String("output", c.Output),
	)

	return nil
}

// options returns the collection options implied by the compile flags.
// The default call compiler is kept when the flags match its defaults so
// that loads remain cacheable.
func (c *Compile) options() []collection.Option {
	if !c.ReverseRevert && (c.MaxDepth == 0 || c.MaxDepth == function.DefaultMaxDepth) {
		return nil
	}

	order := function.ForwardOrder
	if c.ReverseRevert {
		order = function.ReverseOrder
	}

	return []collection.Option{
		collection.WithCallCompiler(function.NewCompiler(
			function.WithLogger(log.Default()),
			function.WithMaxDepth(c.MaxDepth),
			function.WithRevertOrder(order),
		)),
	}
}

// selectScripts returns the named scripts in the order given, or the
// scripts matching the recommendation level in collection order.
func (c *Compile) selectScripts(coll *collection.Collection) ([]*collection.Script, error) {
	var scripts []*collection.Script

	switch {
	case len(c.Script) > 0:
		for _, name := range c.Script {
			s, ok := coll.Script(name)
			if !ok {
				return nil, ErrScriptNotFound.
					With(slog.String("script", name)).
					Wrapf("%q", name)
			}

			scripts = append(scripts, s)
		}

	case c.Recommend == "" || c.Recommend == recommendAll:
		for s := range coll.Scripts() {
			scripts = append(scripts, s)
		}

	default:
		level, err := collection.ParseLevel(c.Recommend)
		if err != nil {
			return nil, err
		}

		scripts = coll.Recommended(level)
	}

	if len(scripts) == 0 {
		return nil, ErrNoScripts.With(slog.String("recommend", c.Recommend))
	}

	return scripts, nil
}

func (c *Compile) write(ctx context.Context, text string) error {
	if c.Output == "" || c.Output == stdinSource {
		_, err := io.WriteString(stdout(ctx), text)

		return err
	}

	return os.WriteFile(c.Output, []byte(text), 0o644) //nolint:gosec
}
