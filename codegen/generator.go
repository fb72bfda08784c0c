package codegen

import (
	"log/slog"
	"time"

	"github.com/ardnew/scriptgen/collection"
	"github.com/ardnew/scriptgen/expression"
	"github.com/ardnew/scriptgen/log"
	"github.com/ardnew/scriptgen/pkg"
)

// DateLayout formats the {{ $date }} parameter of start and end code.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Generator writes complete scripts for one collection.
type Generator struct {
	scripting collection.Scripting
	builder   *Builder
	expr      *expression.Compiler
	logger    log.Logger
	now       func() time.Time
}

// GeneratorOption configures a [Generator].
type GeneratorOption func(*Generator)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock sets the time source for the {{ $date }} parameter.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator returns a Generator for the scripting definition of c.
func NewGenerator(c *collection.Collection, opts ...GeneratorOption) (*Generator, error) {
	if c == nil {
		return nil, pkg.ErrInvalidArgument.Wrapf("undefined collection")
	}

	builder, err := New(c.Scripting.Language)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		scripting: c.Scripting,
		builder:   builder,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.expr = expression.NewCompiler(expression.WithLogger(g.logger))

	return g, nil
}

// FileName returns name with the collection's file extension.
func (g *Generator) FileName(name string) string {
	return name + "." + g.scripting.FileExtension
}

// Generate returns the script for scripts, or their revert script when
// revert is set. Start and end code may reference the parameters
// homepage, version, and date.
func (g *Generator) Generate(scripts []*collection.Script, revert bool) (string, error) {
	args := expression.Map{
		"homepage": pkg.Homepage,
		"version":  pkg.Version(),
		"date":     g.now().UTC().Format(DateLayout),
	}

	start, err := g.expr.Compile(g.scripting.StartCode, args)
	if err != nil {
		return "", pkg.WrapError(err).With(slog.String("field", "startCode"))
	}

	end, err := g.expr.Compile(g.scripting.EndCode, args)
	if err != nil {
		return "", pkg.WrapError(err).With(slog.String("field", "endCode"))
	}

	fragments := make([]Fragment, 0, len(scripts))

	for _, s := range scripts {
		if s == nil {
			return "", pkg.ErrInvalidArgument.Wrapf("undefined script")
		}

		fragments = append(fragments, Fragment{
			Name:       s.Name,
			Code:       s.Code,
			RevertCode: s.RevertCode,
		})
	}

	g.logger.Debug("generate script",
		slog.String("language", g.scripting.Language.String()),
		slog.Int("scripts", len(fragments)),
		slog.Bool("revert", revert),
	)

	return g.builder.Build(fragments,
		WithRevert(revert),
		WithStartCode(start),
		WithEndCode(end),
	), nil
}
