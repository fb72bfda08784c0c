package cli

import "github.com/ardnew/scriptgen/pkg"

// ErrConfig is returned when the configuration file cannot be decoded.
var ErrConfig = pkg.NewError("invalid configuration file")
