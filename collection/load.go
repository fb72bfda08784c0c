package collection

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/scriptgen/pkg"
)

// parsed caches collections keyed by the xxh3 hash of their source.
var parsed sync.Map

// entry holds the result of parsing one source exactly once.
type entry struct {
	once       sync.Once
	collection *Collection
	err        error
}

// Load reads a YAML collection document from r and parses it.
//
// Results are cached by source content, so loading identical input returns
// the same *Collection. The cache is bypassed when a custom call compiler
// is configured or [WithoutCache] is given.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Collection, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	src, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", "reader"))
	}

	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(src)),
		slog.Bool("read_ahead", true),
	)

	if o.noCache || o.compiler != nil {
		o.logger.TraceContext(ctx, "cache bypass",
			slog.Bool("no_cache", o.noCache),
			slog.Bool("custom_compiler", o.compiler != nil),
		)

		return decode(ctx, src, opts...)
	}

	key := strconv.FormatUint(xxh3.Hash(src), 36)

	value, hit := parsed.LoadOrStore(key, new(entry))
	e := value.(*entry)

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", key),
		slog.Bool("cache_hit", hit),
	)

	e.once.Do(func() {
		e.collection, e.err = decode(ctx, src, opts...)
	})

	return e.collection, e.err
}

// LoadFile loads the collection stored at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("source", path))
	}
	defer f.Close()

	c, err := Load(ctx, f, opts...)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("source", path))
	}

	return c, nil
}

// Decode decodes a YAML collection document without parsing it.
func Decode(ctx context.Context, src []byte) (*CollectionData, error) {
	var data CollectionData

	if err := yaml.UnmarshalContext(ctx, src, &data); err != nil {
		return nil, ErrDecode.Wrapf("%s", yaml.FormatError(err, false, true))
	}

	return &data, nil
}

func decode(ctx context.Context, src []byte, opts ...Option) (*Collection, error) {
	data, err := Decode(ctx, src)
	if err != nil {
		return nil, err
	}

	return Parse(data, opts...)
}

// ClearCache removes all cached collections.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	parsed.Clear()
}
