// Package imglink finds images for nodes that have none of their own.
// A node borrows the image of the descendant branch with the most tips,
// compound nodes borrow images of both of their sub-names.
package imglink

import (
	"cmp"
	"slices"

	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/tree"
)

type candidate struct {
	child int
	tips  int
}

// Resolve calculates linked images for a tree. The direct map connects
// names of nodes that own an image to the external id the image file
// is named after. Names absent from the tree are ignored.
//
// Nodes are processed from the deepest up. A node that got a candidate
// from its children adopts the candidate's image, then offers itself to
// its parent unless the parent owns an image. The parent keeps the
// offer with the most tips, the first one wins a tie.
func Resolve(tr *tree.Tree, direct map[string]string) map[string]imgref.ImageRef {
	used := make(map[int]string, len(direct))
	owners := make([]int, 0, len(direct))
	for name, id := range direct {
		if idx, ok := tr.Index(name); ok && id != "" {
			used[idx] = id
			owners = append(owners, idx)
		}
	}
	slices.SortFunc(owners, func(a, b int) int {
		return cmp.Compare(tr.Nodes[a].Name, tr.Nodes[b].Name)
	})

	order, depth := climb(tr, owners)
	slices.SortStableFunc(order, func(a, b int) int {
		return depth[b] - depth[a]
	})

	cands := make(map[int]candidate)
	var candOrder []int
	res := make(map[string]imgref.ImageRef)
	for _, idx := range order {
		n := &tr.Nodes[idx]
		if c, ok := cands[idx]; ok {
			used[idx] = used[c.child]
			res[n.Name] = imgref.NewSingle(used[idx])
		}
		p := n.Parent
		if p == tree.NoParent {
			continue
		}
		if _, ok := used[p]; ok {
			continue
		}
		c, ok := cands[p]
		if !ok {
			candOrder = append(candOrder, p)
		}
		if !ok || c.tips < n.Tips {
			cands[p] = candidate{child: idx, tips: n.Tips}
		}
	}

	for _, idx := range candOrder {
		name := tr.Nodes[idx].Name
		a, b, ok := tree.SplitCompound(name)
		if !ok {
			continue
		}
		pair := imgref.NewPair(usedID(tr, used, a), usedID(tr, used, b))
		if pair.IsNone() {
			delete(res, name)
			continue
		}
		res[name] = pair
	}
	return res
}

// climb collects image owners and their ancestors in discovery order
// with their depths.
func climb(tr *tree.Tree, owners []int) ([]int, map[int]int) {
	depth := make(map[int]int)
	var order []int
	for _, idx := range owners {
		if _, ok := depth[idx]; ok {
			continue
		}
		chain := []int{idx}
		base := 0
		for {
			p := tr.Nodes[chain[len(chain)-1]].Parent
			if p == tree.NoParent {
				break
			}
			if d, ok := depth[p]; ok {
				base = d + 1
				break
			}
			chain = append(chain, p)
		}
		for i := len(chain) - 1; i >= 0; i-- {
			depth[chain[i]] = base + len(chain) - 1 - i
		}
		order = append(order, chain...)
	}
	return order, depth
}

func usedID(tr *tree.Tree, used map[int]string, name string) string {
	idx, ok := tr.Index(name)
	if !ok {
		return ""
	}
	return used[idx]
}
