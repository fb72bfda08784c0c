// Package cmd implements the scriptgen subcommands.
//
// Every command that reads a collection takes its path as the first
// positional argument, or "-" to read standard input. Output goes to the
// writer configured on the kong context, which is standard output unless
// overridden.
package cmd

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/scriptgen/collection"
	"github.com/ardnew/scriptgen/function"
)

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

// recommendAll selects every script regardless of recommendation.
const recommendAll = "all"

// Vars returns the kong variables referenced by command flags.
func Vars() kong.Vars {
	return kong.Vars{
		"recommendEnum": strings.Join(
			append([]string{recommendAll}, collection.Levels()[1:]...), ","),
		"maxDepth": strconv.Itoa(function.DefaultMaxDepth),
	}
}
