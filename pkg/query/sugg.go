package query

import (
	"cmp"
	"context"
	"slices"
	"unicode/utf8"

	"github.com/gnames/gntol/pkg/tree"
)

// LookupSuggestions finds names that start with text, ordered by
// length and then alphabetically. If there are fewer than limit such
// names, names that contain text elsewhere fill the rest, sorted the
// same way and placed after the first ones. A node is suggested once.
// An invalid limit returns nil.
func (e *Engine) LookupSuggestions(
	ctx context.Context,
	view tree.View,
	text string,
	limit int,
) (*SuggResponse, error) {
	if !e.validLimit(limit) {
		return nil, nil
	}
	var res *SuggResponse
	err := e.withReader(ctx, view, func(r Reader) error {
		var err error
		res, err = lookupSuggestions(ctx, r, text, limit)
		return err
	})
	return res, err
}

func lookupSuggestions(
	ctx context.Context,
	r Reader,
	text string,
	limit int,
) (*SuggResponse, error) {
	var suggs []Suggestion
	seen := make(map[string]struct{})

	// one extra suggestion tells if there are more
	for _, prefix := range []bool{true, false} {
		if len(suggs) > limit {
			break
		}
		pass, err := searchPass(ctx, r, Search{
			Text:   text,
			Prefix: prefix,
			Limit:  limit + 1,
		})
		if err != nil {
			return nil, err
		}
		for _, s := range pass {
			key := s.node()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			suggs = append(suggs, s)
		}
	}

	res := &SuggResponse{Suggestions: []Suggestion{}}
	if len(suggs) > limit {
		res.HasMore = true
		suggs = suggs[:limit]
	}
	res.Suggestions = append(res.Suggestions, suggs...)
	return res, nil
}

// searchPass searches node names and alternative names and returns one
// suggestion per node, ordered by length and then alphabetically. A
// node found by its canonical name is suggested by it.
func searchPass(ctx context.Context, r Reader, s Search) ([]Suggestion, error) {
	names, err := r.SearchNames(ctx, s)
	if err != nil {
		return nil, err
	}
	alts, err := r.SearchAltNames(ctx, s)
	if err != nil {
		return nil, err
	}

	res := make([]Suggestion, 0, len(names)+len(alts))
	found := make(map[string]struct{}, len(names))
	for _, n := range names {
		found[n.Name] = struct{}{}
		res = append(res, Suggestion{Name: n.Name, Pop: n.Pop})
	}
	for _, a := range alts {
		if _, ok := found[a.Name]; ok {
			continue
		}
		found[a.Name] = struct{}{}
		canonical := a.Name
		res = append(res, Suggestion{Name: a.AltName, CanonicalName: &canonical, Pop: a.Pop})
	}

	slices.SortStableFunc(res, func(a, b Suggestion) int {
		return cmp.Or(
			cmp.Compare(utf8.RuneCountInString(a.Name), utf8.RuneCountInString(b.Name)),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return res, nil
}

// node is the name of the suggested node.
func (s Suggestion) node() string {
	if s.CanonicalName != nil {
		return *s.CanonicalName
	}
	return s.Name
}
