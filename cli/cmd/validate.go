package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/scriptgen/collection"
	"github.com/ardnew/scriptgen/log"
)

// Validate parses collection files and reports every invalid one.
type Validate struct {
	Collections []string `arg:"" help:"Collection file(s) or '-' for stdin." name:"collection"`
}

// Run executes the validate command.
func (v *Validate) Run(ctx context.Context) error {
	var invalid []string

	for _, path := range v.Collections {
		coll, err := v.load(ctx, path)
		if err != nil {
			log.ErrorContext(ctx, "invalid collection",
				slog.String("file", path),
				slog.Any("error", err),
			)

			invalid = append(invalid, path)

			continue
		}

		scripts := 0
		for range coll.Scripts() {
			scripts++
		}

		log.InfoContext(ctx, "valid collection",
			slog.String("file", path),
			slog.String("os", coll.OS),
			slog.String("language", coll.Scripting.Language.String()),
			slog.Int("scripts", scripts),
			slog.Int("functions", coll.Functions.Len()),
		)
	}

	if len(invalid) > 0 {
		return ErrInvalidCollection.
			With(slog.Any("files", invalid)).
			Wrapf("%d of %d file(s) failed validation", len(invalid), len(v.Collections))
	}

	return nil
}

func (v *Validate) load(ctx context.Context, path string) (*collection.Collection, error) {
	opts := []collection.Option{collection.WithLogger(log.Default()), collection.WithoutCache()}

	if path == stdinSource {
		return collection.Load(ctx, os.Stdin, opts...)
	}

	return collection.LoadFile(ctx, path, opts...)
}
