package collection

import (
	"iter"
	"log/slog"

	"github.com/ardnew/scriptgen/function"
	"github.com/ardnew/scriptgen/lang"
	"github.com/ardnew/scriptgen/pkg"
)

// Scripting describes how scripts of a collection are assembled.
type Scripting struct {
	Language      lang.Language
	FileExtension string
	StartCode     string
	EndCode       string
}

// Collection is a parsed, validated set of categories for one operating
// system. It is immutable.
type Collection struct {
	OS         string
	Scripting  Scripting
	Categories []*Category
	Functions  *function.Registry
}

// Parse validates data and returns the resulting collection.
func Parse(data *CollectionData, opts ...Option) (*Collection, error) {
	if data == nil {
		return nil, ErrInvalidArgument.Wrapf("undefined collection")
	}

	if data.OS == "" {
		return nil, ErrInvalidArgument.Wrapf("collection has no os")
	}

	attr := slog.String("os", data.OS)

	language, err := lang.Parse(data.Scripting.Language)
	if err != nil {
		return nil, pkg.WrapError(err).With(attr)
	}

	syntax, err := language.Syntax()
	if err != nil {
		return nil, pkg.WrapError(err).With(attr)
	}

	if len(data.Actions) == 0 {
		return nil, ErrInvalidArgument.With(attr).
			Wrapf("collection has no actions")
	}

	ctx, err := NewParseContext(data.Functions, syntax, opts...)
	if err != nil {
		return nil, pkg.WrapError(err).With(attr)
	}

	c := &Collection{
		OS: data.OS,
		Scripting: Scripting{
			Language:      language,
			FileExtension: data.Scripting.FileExtension,
			StartCode:     data.Scripting.StartCode,
			EndCode:       data.Scripting.EndCode,
		},
		Functions:  ctx.Functions,
		Categories: make([]*Category, 0, len(data.Actions)),
	}

	if c.Scripting.FileExtension == "" {
		c.Scripting.FileExtension = language.FileExtension()
	}

	for _, action := range data.Actions {
		category, err := ParseCategory(action, ctx)
		if err != nil {
			return nil, pkg.WrapError(err).With(attr)
		}

		c.Categories = append(c.Categories, category)
	}

	seen := make(map[string]struct{})

	for s := range c.Scripts() {
		if _, dup := seen[s.Name]; dup {
			return nil, ErrDuplicateScript.
				With(attr, slog.String("script", s.Name)).
				Wrapf("script name is not unique: %q", s.Name)
		}

		seen[s.Name] = struct{}{}
	}

	ctx.logger.Debug("parsed collection",
		attr,
		slog.String("language", language.String()),
		slog.Int("categories", ctx.lastID),
		slog.Int("scripts", len(seen)),
		slog.Int("functions", c.Functions.Len()),
	)

	return c, nil
}

// Scripts returns an iterator over every script in the collection,
// depth-first in declaration order.
func (c *Collection) Scripts() iter.Seq[*Script] {
	return func(yield func(*Script) bool) {
		for _, cat := range c.Categories {
			for s := range cat.AllScripts() {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// AllCategories returns an iterator over every category in the collection,
// depth-first in declaration order.
func (c *Collection) AllCategories() iter.Seq[*Category] {
	return func(yield func(*Category) bool) {
		for _, cat := range c.Categories {
			if !cat.walk(yield) {
				return
			}
		}
	}
}

// Script returns the script named name.
func (c *Collection) Script(name string) (*Script, bool) {
	for s := range c.Scripts() {
		if s.Name == name {
			return s, true
		}
	}

	return nil, false
}

// Recommended returns the scripts selected at level, in collection order.
func (c *Collection) Recommended(level Level) []*Script {
	var scripts []*Script

	for s := range c.Scripts() {
		if level.Includes(s.Level) {
			scripts = append(scripts, s)
		}
	}

	return scripts
}
