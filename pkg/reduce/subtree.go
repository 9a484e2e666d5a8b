package reduce

import (
	"fmt"
	"slices"

	"github.com/gnames/gntol/pkg/tree"
)

// node is a working copy of a full-tree node. Links are full-tree
// indices.
type node struct {
	parent   int
	children []int
	tips     int
	support  bool
}

// Subtree is a part of the full tree that is being reduced. Nodes keep
// the order in which they were added, so results do not depend on map
// iteration.
type Subtree struct {
	full  *tree.Tree
	nodes map[int]*node
	order []int
}

func newSubtree(full *tree.Tree) *Subtree {
	return &Subtree{full: full, nodes: make(map[int]*node)}
}

func (s *Subtree) add(idx int, n *node) {
	s.nodes[idx] = n
	s.order = append(s.order, idx)
}

// drop deletes marked nodes. Links to them must be already removed.
func (s *Subtree) drop(marked map[int]struct{}) {
	if len(marked) == 0 {
		return
	}
	for idx := range marked {
		delete(s.nodes, idx)
	}
	s.order = slices.DeleteFunc(s.order, func(idx int) bool {
		_, ok := marked[idx]
		return ok
	})
}

func (s *Subtree) name(idx int) string {
	return s.full.Nodes[idx].Name
}

func (s *Subtree) names(idxs map[int]struct{}) map[string]struct{} {
	res := make(map[string]struct{}, len(idxs))
	for idx := range idxs {
		res[s.name(idx)] = struct{}{}
	}
	return res
}

// indices converts names to a set of full-tree indices, unknown names
// are ignored.
func (s *Subtree) indices(names map[string]struct{}) map[int]struct{} {
	res := make(map[int]struct{}, len(names))
	for name := range names {
		if idx, ok := s.full.Index(name); ok {
			res[idx] = struct{}{}
		}
	}
	return res
}

// reattach moves children of a removed node to its parent. Support of
// each moved child is kept only if the removed node was supported too.
func (s *Subtree) reattach(n *node, children []int) {
	for _, c := range children {
		cn := s.nodes[c]
		cn.parent = n.parent
		cn.support = cn.support && n.support
	}
}

// Len returns the number of nodes.
func (s *Subtree) Len() int {
	return len(s.order)
}

// Has returns true if a node with the name is in the subtree.
func (s *Subtree) Has(name string) bool {
	idx, ok := s.full.Index(name)
	if !ok {
		return false
	}
	_, ok = s.nodes[idx]
	return ok
}

// Tree converts the subtree to a standalone tree.
func (s *Subtree) Tree() (*tree.Tree, error) {
	if len(s.order) == 0 {
		return nil, fmt.Errorf("reduced tree is empty")
	}
	res := tree.New()
	newIdx := make(map[int]int, len(s.order))
	for _, idx := range s.order {
		fn := &s.full.Nodes[idx]
		n := s.nodes[idx]
		i, err := res.Add(fn.Name, fn.ID, n.tips, n.support)
		if err != nil {
			return nil, err
		}
		newIdx[idx] = i
	}
	for _, idx := range s.order {
		for _, c := range s.nodes[idx].children {
			res.Link(newIdx[idx], newIdx[c])
		}
	}
	if err := res.FindRoot(); err != nil {
		return nil, err
	}
	return res, nil
}

func removeChild(children []int, idx int) []int {
	return slices.DeleteFunc(children, func(c int) bool { return c == idx })
}
