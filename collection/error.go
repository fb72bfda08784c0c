package collection

import "github.com/ardnew/scriptgen/pkg"

// Predefined errors (sentinel values).
var (
	ErrInvalidArgument         = pkg.ErrInvalidArgument
	ErrMissingName             = pkg.NewError("missing name")
	ErrInvalidScriptDefinition = pkg.NewError("invalid script definition")
	ErrUndefinedCategory       = pkg.NewError("undefined category")
	ErrEmptyCategory           = pkg.NewError("empty category")
	ErrDuplicateLine           = pkg.NewError("duplicate line")
	ErrDuplicateScript         = pkg.NewError("duplicate script")
	ErrEmptyCode               = pkg.NewError("empty code")
	ErrRevertEqualsCode        = pkg.NewError("revert code equals code")
	ErrInvalidRecommendation   = pkg.NewError("invalid recommendation")
	ErrDecode                  = pkg.NewError("decode error")
	ErrInvalidArgumentValue    = pkg.NewError("invalid argument value")
	ErrReadInput               = pkg.NewError("read input error")
)
