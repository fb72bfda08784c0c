package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/scriptgen/collection"
)

// Search finds scripts whose names fuzzy-match a query.
type Search struct {
	Source `embed:""`

	Query string `arg:""                help:"Text to match against script names."`
	Limit int    `default:"10" help:"Maximum number of matches to print (0 for all)." short:"n"`
}

// Run executes the search command.
func (s *Search) Run(ctx context.Context) error {
	coll, err := s.load(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	st := newStyles(w)

	for _, m := range s.find(coll) {
		line := highlight(m.Str, m.MatchedIndexes, st)

		if script, ok := coll.Script(m.Str); ok && script.Level != collection.LevelNone {
			line += " " + st.level.Render("["+script.Level.String()+"]")
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// find returns the best matches for the query, best first.
func (s *Search) find(coll *collection.Collection) fuzzy.Matches {
	var names []string
	for script := range coll.Scripts() {
		names = append(names, script.Name)
	}

	matches := fuzzy.Find(s.Query, names)
	if s.Limit > 0 && len(matches) > s.Limit {
		matches = matches[:s.Limit]
	}

	return matches
}

// highlight renders the runes of str at the byte offsets in matched with
// the match style.
func highlight(str string, matched []int, st styles) string {
	var sb strings.Builder

	for i, r := range str {
		if slices.Contains(matched, i) {
			sb.WriteString(st.match.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
