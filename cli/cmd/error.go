package cmd

import "github.com/ardnew/scriptgen/pkg"

// Predefined errors (sentinel values).
var (
	ErrYAMLMarshal       = pkg.NewError("marshal YAML")
	ErrWriteConfig       = pkg.NewError("write configuration file")
	ErrFileExists        = pkg.NewError("file exists (use --force to overwrite)")
	ErrWriteOutput       = pkg.NewError("write output")
	ErrScriptNotFound    = pkg.NewError("script not found")
	ErrNoScripts         = pkg.NewError("no scripts selected")
	ErrInvalidCollection = pkg.NewError("invalid collection")
)
