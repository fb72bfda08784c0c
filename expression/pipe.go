package expression

import (
	"maps"
	"strings"

	"github.com/ardnew/mung"
)

// Pipes returns the custom pipe functions available in every placeholder,
// keyed by name. The returned map is a copy.
func Pipes() map[string]any {
	return maps.Clone(builtinPipes)
}

//nolint:gochecknoglobals
var builtinPipes = map[string]any{
	"escapeDoubleQuotes": escapeDoubleQuotes,
	"escapeSingleQuotes": escapeSingleQuotes,
	"orDefault":          orDefault,
	"pathPrefix":         pathPrefix,
}

func escapeDoubleQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// escapeSingleQuotes closes, escapes, and reopens a single-quoted shell word.
func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, `'`, `'\''`)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}

	return s
}

// pathPrefix prepends items to the delim-separated list s, removing
// duplicates.
func pathPrefix(s, delim string, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(s),
		mung.WithDelim(delim),
		mung.WithPrefixItems(items...),
	).String()
}
