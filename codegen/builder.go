package codegen

import (
	"strings"

	"github.com/ardnew/scriptgen/lang"
)

// revertSuffix is appended to section titles in revert mode.
const revertSuffix = " (revert)"

// Fragment is the compiled code of one named script.
type Fragment struct {
	Name       string
	Code       string
	RevertCode string
}

// Builder assembles fragments into script text using a [Dialect].
// A Builder is stateless and safe for concurrent use.
type Builder struct {
	dialect Dialect
}

// New returns a Builder for the dialect of l.
func New(l lang.Language) (*Builder, error) {
	d, err := NewDialect(l)
	if err != nil {
		return nil, err
	}

	return NewBuilder(d), nil
}

// NewBuilder returns a Builder writing with d.
func NewBuilder(d Dialect) *Builder {
	return &Builder{dialect: d}
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() Dialect { return b.dialect }

type buildOptions struct {
	revert    bool
	startCode string
	endCode   string
}

// BuildOption configures a single [Builder.Build].
type BuildOption func(*buildOptions)

// WithRevert selects each fragment's revert code instead of its code.
func WithRevert(revert bool) BuildOption {
	return func(o *buildOptions) {
		o.revert = revert
	}
}

// WithStartCode writes code before the first fragment.
func WithStartCode(code string) BuildOption {
	return func(o *buildOptions) {
		o.startCode = code
	}
}

// WithEndCode writes code after the last fragment.
func WithEndCode(code string) BuildOption {
	return func(o *buildOptions) {
		o.endCode = code
	}
}

// Build returns the script text for fragments.
//
// Each fragment whose selected code is non-empty is written as a section:
// a header comment, an echo of the fragment name, the code, and a footer
// rule. Sections are separated by a blank line. The result ends with a
// newline unless it is empty.
func (b *Builder) Build(fragments []Fragment, opts ...BuildOption) string {
	var o buildOptions

	for _, opt := range opts {
		opt(&o)
	}

	var blocks []string

	if o.startCode != "" {
		blocks = append(blocks, b.dialect.Code(o.startCode))
	}

	for _, f := range fragments {
		title, code := f.Name, f.Code
		if o.revert {
			title, code = title+revertSuffix, f.RevertCode
		}

		if code == "" {
			continue
		}

		blocks = append(blocks, b.section(title, code))
	}

	if o.endCode != "" {
		blocks = append(blocks, b.dialect.Code(o.endCode))
	}

	if len(blocks) == 0 {
		return ""
	}

	nl := b.dialect.Newline()

	return strings.Join(blocks, nl+nl) + nl
}

func (b *Builder) section(title, code string) string {
	return strings.Join([]string{
		b.dialect.SectionHeader(title),
		b.dialect.Echo("--- " + title),
		b.dialect.Code(code),
		b.dialect.Comment(rule("")),
	}, b.dialect.Newline())
}
