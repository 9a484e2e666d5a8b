// Package tree provides an arena-indexed rooted tree used by every
// tree-of-life view. Nodes refer to each other by integer index, so
// parent back-references do not create pointer cycles, and all walks
// use explicit stacks instead of call-stack recursion.
package tree

import (
	"fmt"
	"slices"
)

// NoParent marks the parent index of the root node.
const NoParent = -1

// Node is a taxonomic unit of a tree view.
type Node struct {
	// Name is the display name, unique within a tree.
	Name string

	// ID is the external identifier from the source release
	// (for example 'ott770315' or 'mrcaott6ott22687').
	ID string

	// Tips is the number of descendant leaves, leaves have 1.
	Tips int

	// Support is true if the placement of the node under its parent
	// is corroborated by supporting trees without conflicting ones.
	Support bool

	// Parent is the index of the parent node or NoParent.
	Parent int

	// Children are indices of child nodes.
	Children []int
}

// Edge is a parent/child pair with the support flag of the child.
type Edge struct {
	Parent  string
	Child   string
	Support bool
}

// Tree is a rooted tree with nodes stored in a slice.
type Tree struct {
	Nodes  []Node
	Root   int
	byName map[string]int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{Root: NoParent, byName: make(map[string]int)}
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Add appends a parentless node and returns its index.
// Names must be unique within a tree.
func (t *Tree) Add(name, id string, tips int, support bool) (int, error) {
	if _, ok := t.byName[name]; ok {
		return 0, fmt.Errorf("duplicate node name '%s'", name)
	}
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		Name:    name,
		ID:      id,
		Tips:    tips,
		Support: support,
		Parent:  NoParent,
	})
	t.byName[name] = idx
	return idx, nil
}

// Link attaches child to parent.
func (t *Tree) Link(parent, child int) {
	t.Nodes[child].Parent = parent
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, child)
}

// Index returns the index of a node with the given name.
func (t *Tree) Index(name string) (int, bool) {
	idx, ok := t.byName[name]
	return idx, ok
}

// Has returns true if the tree contains a node with the given name.
func (t *Tree) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Node returns the node stored under the given name.
func (t *Tree) Node(name string) (*Node, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.Nodes[idx], true
}

// RootName returns the name of the root or an empty string for an
// empty tree.
func (t *Tree) RootName() string {
	if t.Root == NoParent {
		return ""
	}
	return t.Nodes[t.Root].Name
}

// FindRoot sets Root to the only node without a parent.
func (t *Tree) FindRoot() error {
	t.Root = NoParent
	for i := range t.Nodes {
		if t.Nodes[i].Parent != NoParent {
			continue
		}
		if t.Root != NoParent {
			return fmt.Errorf(
				"tree has more than one root: '%s', '%s'",
				t.Nodes[t.Root].Name, t.Nodes[i].Name,
			)
		}
		t.Root = i
	}
	if t.Root == NoParent && len(t.Nodes) > 0 {
		return fmt.Errorf("tree has no root")
	}
	return nil
}

// PreOrder returns indices of nodes reachable from the root, parents
// before children.
func (t *Tree) PreOrder() []int {
	if t.Root == NoParent {
		return nil
	}
	res := make([]int, 0, len(t.Nodes))
	stack := []int{t.Root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = append(res, idx)
		ch := t.Nodes[idx].Children
		for i := len(ch) - 1; i >= 0; i-- {
			stack = append(stack, ch[i])
		}
	}
	return res
}

// UpdateTips recomputes tips bottom-up. A node without children gets
// tips = 1.
func (t *Tree) UpdateTips() {
	order := t.PreOrder()
	for i := len(order) - 1; i >= 0; i-- {
		n := &t.Nodes[order[i]]
		tips := 0
		for _, c := range n.Children {
			tips += t.Nodes[c].Tips
		}
		n.Tips = max(1, tips)
	}
}

// SortChildren orders children of every node by descending tips.
// Equal tips keep their current order.
func (t *Tree) SortChildren() {
	for i := range t.Nodes {
		slices.SortStableFunc(t.Nodes[i].Children, func(a, b int) int {
			return t.Nodes[b].Tips - t.Nodes[a].Tips
		})
	}
}

// Depth returns the number of edges between a node and the root.
func (t *Tree) Depth(idx int) int {
	var res int
	for t.Nodes[idx].Parent != NoParent {
		idx = t.Nodes[idx].Parent
		res++
	}
	return res
}

// Edges returns all parent/child pairs of the tree.
func (t *Tree) Edges() []Edge {
	res := make([]Edge, 0, len(t.Nodes))
	for i := range t.Nodes {
		n := &t.Nodes[i]
		for _, c := range n.Children {
			res = append(res, Edge{
				Parent:  n.Name,
				Child:   t.Nodes[c].Name,
				Support: t.Nodes[c].Support,
			})
		}
	}
	return res
}

// Validate checks that nodes form a single rooted tree with consistent
// parent pointers, unique names and tips equal to the sum of children
// tips.
func (t *Tree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree is empty")
	}
	roots := 0
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Parent == NoParent {
			roots++
		}
		if idx, ok := t.byName[n.Name]; !ok || idx != i {
			return fmt.Errorf("name index is inconsistent for '%s'", n.Name)
		}
		sum := 0
		for _, c := range n.Children {
			if t.Nodes[c].Parent != i {
				return fmt.Errorf(
					"child '%s' does not point to parent '%s'",
					t.Nodes[c].Name, n.Name,
				)
			}
			sum += t.Nodes[c].Tips
		}
		if len(n.Children) == 0 && n.Tips != 1 {
			return fmt.Errorf("leaf '%s' has %d tips", n.Name, n.Tips)
		}
		if len(n.Children) > 0 && n.Tips != sum {
			return fmt.Errorf(
				"node '%s' has %d tips, children sum to %d",
				n.Name, n.Tips, sum,
			)
		}
	}
	if roots != 1 {
		return fmt.Errorf("tree has %d roots", roots)
	}
	if t.Root == NoParent || t.Nodes[t.Root].Parent != NoParent {
		return fmt.Errorf("root index is not set")
	}
	if reached := len(t.PreOrder()); reached != len(t.Nodes) {
		return fmt.Errorf(
			"%d of %d nodes are not reachable from the root",
			len(t.Nodes)-reached, len(t.Nodes),
		)
	}
	return nil
}
