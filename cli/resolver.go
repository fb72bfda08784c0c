package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The document is a flat mapping from flag name to value. Keys may use
// hyphens or underscores:
//
//	log-level: debug
//	log_format: text
//	recommend: strict
//
// Command-line flags override configuration values. A malformed file is
// reported as an error; an empty file configures nothing.
func resolve(r io.Reader) (kong.Resolver, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := yaml.Unmarshal(src, &values); err != nil {
		return nil, ErrConfig.Wrapf("%s", yaml.FormatError(err, false, true))
	}

	cfg := make(config, len(values))
	for k, v := range values {
		cfg[k] = normalize(v)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	return nil, nil //nolint:nilnil
}

// normalize converts decoded YAML numbers to strings and lists to
// comma-separated strings, which kong's mappers parse.
func normalize(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = fmt.Sprint(normalize(e))
		}

		return strings.Join(out, ",")
	default:
		return v
	}
}
