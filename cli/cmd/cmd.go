package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scriptgen/collection"
	"github.com/ardnew/scriptgen/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// outputKey is used to store an output [io.Writer] in [context.Context].
type outputKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

// WithOutput returns a new context.Context whose commands write to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output.
func stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Source selects the collection file a command reads.
type Source struct {
	Collection string `arg:"" help:"Collection file or '-' for stdin." name:"collection"`
}

// load reads and parses the selected collection.
func (s Source) load(ctx context.Context, opts ...collection.Option) (*collection.Collection, error) {
	opts = append([]collection.Option{collection.WithLogger(log.Default())}, opts...)

	if s.Collection == stdinSource {
		return collection.Load(ctx, os.Stdin, opts...)
	}

	return collection.LoadFile(ctx, s.Collection, opts...)
}
