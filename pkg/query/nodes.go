package query

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/tree"
)

// LookupNodes returns nodes with the given names. Unknown names are
// absent from the result.
func (e *Engine) LookupNodes(
	ctx context.Context,
	view tree.View,
	names []string,
) (map[string]Node, error) {
	var res map[string]Node
	err := e.withReader(ctx, view, func(r Reader) error {
		var err error
		res, err = lookupNodes(ctx, r, names)
		return err
	})
	return res, err
}

// LookupChildrenOf returns a node with its children.
func (e *Engine) LookupChildrenOf(
	ctx context.Context,
	view tree.View,
	name string,
) (map[string]Node, error) {
	var res map[string]Node
	err := e.withReader(ctx, view, func(r Reader) error {
		var err error
		res, err = lookupChildrenOf(ctx, r, name)
		return err
	})
	return res, err
}

// LookupAncestorChain returns a node, its ancestors and their children.
// The climb stops at the root or at an ancestor of excl. The starting
// node comes without its children.
func (e *Engine) LookupAncestorChain(
	ctx context.Context,
	view tree.View,
	name, excl string,
) (map[string]Node, error) {
	var res map[string]Node
	err := e.withReader(ctx, view, func(r Reader) error {
		var err error
		res, err = lookupAncestorChain(ctx, r, name, excl)
		return err
	})
	return res, err
}

func lookupChildrenOf(ctx context.Context, r Reader, name string) (map[string]Node, error) {
	res, err := lookupNodes(ctx, r, []string{name})
	if err != nil {
		return nil, err
	}
	n, ok := res[name]
	if !ok {
		return res, nil
	}
	children, err := lookupNodes(ctx, r, n.Children)
	if err != nil {
		return nil, err
	}
	for k, v := range children {
		res[k] = v
	}
	return res, nil
}

func lookupAncestorChain(
	ctx context.Context,
	r Reader,
	name, excl string,
) (map[string]Node, error) {
	skip := make(map[string]struct{})
	for cur := excl; cur != ""; {
		edges, err := r.ParentEdges(ctx, []string{cur})
		if err != nil {
			return nil, err
		}
		if len(edges) == 0 {
			break
		}
		cur = edges[0].Parent
		if _, ok := skip[cur]; ok {
			break
		}
		skip[cur] = struct{}{}
	}

	res := make(map[string]Node)
	first := true
	for {
		nodes, err := lookupNodes(ctx, r, []string{name})
		if err != nil {
			return nil, err
		}
		n, ok := nodes[name]
		if !ok {
			if !first {
				slog.Warn("Node of ancestor chain not found", "name", name)
			}
			return res, nil
		}
		if _, ok := res[name]; ok {
			slog.Warn("Ancestor chain has a loop", "name", name)
			return res, nil
		}
		res[name] = n

		if !first {
			var add []string
			for _, c := range n.Children {
				if _, ok := res[c]; !ok {
					add = append(add, c)
				}
			}
			children, err := lookupNodes(ctx, r, add)
			if err != nil {
				return nil, err
			}
			for k, v := range children {
				res[k] = v
			}
		}
		first = false

		if n.Parent == nil {
			return res, nil
		}
		if _, ok := skip[*n.Parent]; ok {
			return res, nil
		}
		name = *n.Parent
	}
}

// lookupNodes collects everything a client needs to show nodes.
func lookupNodes(ctx context.Context, r Reader, names []string) (map[string]Node, error) {
	res := make(map[string]Node)
	if len(names) == 0 {
		return res, nil
	}

	recs, err := r.Nodes(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return res, nil
	}
	found := make([]string, 0, len(recs))
	nodes := make(map[string]*Node, len(recs))
	for _, rec := range recs {
		found = append(found, rec.Name)
		nodes[rec.Name] = &Node{
			ExternalID: rec.ID,
			Children:   []string{},
			Tips:       rec.Tips,
			// a node without a parent edge is the root
			Support: true,
		}
	}

	edges, err := r.ChildEdges(ctx, found)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(edges, func(a, b EdgeRecord) int {
		return cmp.Or(
			cmp.Compare(b.ChildTips, a.ChildTips),
			cmp.Compare(a.Child, b.Child),
		)
	})
	for _, e := range edges {
		if n, ok := nodes[e.Parent]; ok {
			n.Children = append(n.Children, e.Child)
		}
	}

	edges, err = r.ParentEdges(ctx, found)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if n, ok := nodes[e.Child]; ok {
			parent := e.Parent
			n.Parent = &parent
			n.Support = e.Support
		}
	}

	withImg, err := r.NodeImages(ctx, found)
	if err != nil {
		return nil, err
	}
	for _, name := range withImg {
		if n, ok := nodes[name]; ok {
			n.ImageName = imgref.NewSingle(n.ExternalID)
		}
	}

	var unresolved []string
	for _, name := range found {
		if nodes[name].ImageName.IsNone() {
			unresolved = append(unresolved, name)
		}
	}
	if len(unresolved) > 0 {
		linked, err := r.LinkedImages(ctx, unresolved)
		if err != nil {
			return nil, err
		}
		for name, ref := range linked {
			if n, ok := nodes[name]; ok {
				n.ImageName = ref
			}
		}
	}

	pref, err := r.PreferredNames(ctx, found)
	if err != nil {
		return nil, err
	}
	for name, alt := range pref {
		if n, ok := nodes[name]; ok {
			n.CommonName = &alt
		}
	}

	iucn, err := r.IUCN(ctx, found)
	if err != nil {
		return nil, err
	}
	for name, status := range iucn {
		if n, ok := nodes[name]; ok {
			n.IUCN = &status
		}
	}

	for name, n := range nodes {
		res[name] = *n
	}
	return res, nil
}
