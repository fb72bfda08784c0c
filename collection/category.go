package collection

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/ardnew/scriptgen/pkg"
)

// Category groups scripts and subcategories under a name.
type Category struct {
	ID                int
	Name              string
	DocumentationURLs []string
	Scripts           []*Script
	SubCategories     []*Category
}

// AllScripts returns an iterator over every script in c and its
// subcategories, depth-first in declaration order.
func (c *Category) AllScripts() iter.Seq[*Script] {
	return func(yield func(*Script) bool) {
		c.walk(func(cat *Category) bool {
			for _, s := range cat.Scripts {
				if !yield(s) {
					return false
				}
			}

			return true
		})
	}
}

// walk visits c and its subcategories depth-first until visit returns
// false. It reports whether the walk completed.
func (c *Category) walk(visit func(*Category) bool) bool {
	if !visit(c) {
		return false
	}

	for _, sub := range c.SubCategories {
		if !sub.walk(visit) {
			return false
		}
	}

	return true
}

// ParseCategory validates data and parses its children recursively.
// Categories receive identifiers from ctx in depth-first order.
func ParseCategory(data *CategoryData, ctx *ParseContext) (*Category, error) {
	if data == nil {
		return nil, ErrUndefinedCategory.Wrapf("category is null or undefined")
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	name := data.DisplayName()
	if name == "" {
		return nil, ErrMissingName.Wrapf("category has no name")
	}

	if len(data.Children) == 0 {
		return nil, ErrEmptyCategory.
			With(slog.String("category", name)).
			Wrapf("category has no children: %q", name)
	}

	category := &Category{
		ID:                ctx.nextID(),
		Name:              name,
		DocumentationURLs: slices.Clone([]string(data.Docs)),
	}

	for i, child := range data.Children {
		switch {
		case child == nil || (child.Category == nil && child.Script == nil):
			return nil, ErrInvalidArgument.
				With(slog.String("category", name), slog.Int("child", i)).
				Wrapf("category %q has an undefined child at index %d", name, i)

		case child.Category != nil:
			sub, err := ParseCategory(child.Category, ctx)
			if err != nil {
				return nil, pkg.WrapError(err).With(slog.String("parent", name))
			}

			category.SubCategories = append(category.SubCategories, sub)

		default:
			script, err := ParseScript(child.Script, ctx)
			if err != nil {
				return nil, pkg.WrapError(err).With(slog.String("category", name))
			}

			category.Scripts = append(category.Scripts, script)
		}
	}

	ctx.logger.Trace("parsed category",
		slog.Int("id", category.ID),
		slog.String("category", name),
		slog.Int("scripts", len(category.Scripts)),
		slog.Int("subcategories", len(category.SubCategories)),
	)

	return category, nil
}
