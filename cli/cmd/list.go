package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/scriptgen/collection"
)

// List prints the category tree of a collection.
type List struct {
	Source `embed:""`

	Docs bool `help:"Include documentation URLs."`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	coll, err := l.load(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	st := newStyles(w)

	root := tree.Root(st.category.Render(
		fmt.Sprintf("%s (%s)", coll.OS, coll.Scripting.Language))).
		EnumeratorStyle(st.branch)

	for _, c := range coll.Categories {
		root.Child(l.category(c, st))
	}

	_, err = fmt.Fprintln(w, root.String())

	return err
}

func (l *List) category(c *collection.Category, st styles) *tree.Tree {
	t := tree.Root(st.category.Render(c.Name) + " " + st.faint.Render(fmt.Sprintf("#%d", c.ID))).
		EnumeratorStyle(st.branch)

	l.docs(t, c.DocumentationURLs, st)

	for _, s := range c.Scripts {
		item := st.script.Render(s.Name)
		if s.Level != collection.LevelNone {
			item += " " + st.level.Render("["+s.Level.String()+"]")
		}

		if l.Docs && len(s.DocumentationURLs) > 0 {
			sub := tree.Root(item).EnumeratorStyle(st.branch)
			l.docs(sub, s.DocumentationURLs, st)
			t.Child(sub)

			continue
		}

		t.Child(item)
	}

	for _, sub := range c.SubCategories {
		t.Child(l.category(sub, st))
	}

	return t
}

func (l *List) docs(t *tree.Tree, urls []string, st styles) {
	if !l.Docs {
		return
	}

	for _, u := range urls {
		t.Child(st.faint.Render(u))
	}
}
