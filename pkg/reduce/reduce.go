// Package reduce derives smaller views of the full tree. Each view
// starts from a set of seed nodes, takes all their ancestors and then
// removes nodes that add little to navigation.
package reduce

import (
	"slices"

	"github.com/gnames/gntol/pkg/tree"
)

// GenNodeMap creates a subtree that connects seeds to the root. Seeds
// are processed in sorted order. Names absent from the full tree are
// returned as unknown.
func GenNodeMap(full *tree.Tree, seeds []string) (*Subtree, []string) {
	s := newSubtree(full)
	var unknown []string

	seeds = slices.Clone(seeds)
	slices.Sort(seeds)
	seeds = slices.Compact(seeds)

	for _, name := range seeds {
		idx, ok := full.Index(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		prev := tree.NoParent
		for idx != tree.NoParent {
			if n, ok := s.nodes[idx]; ok {
				if prev != tree.NoParent {
					n.children = append(n.children, prev)
				}
				break
			}
			fn := &full.Nodes[idx]
			n := &node{
				parent:  fn.Parent,
				support: fn.Support || fn.Parent == tree.NoParent,
			}
			if prev != tree.NoParent {
				n.children = []int{prev}
			}
			s.add(idx, n)
			prev = idx
			idx = fn.Parent
		}
	}
	return s, unknown
}

// RemoveCompositeNodes deletes compound nodes that have a parent and
// attaches their children to that parent. It returns names of removed
// nodes.
func (s *Subtree) RemoveCompositeNodes() map[string]struct{} {
	marked := make(map[int]struct{})
	for _, idx := range s.order {
		n := s.nodes[idx]
		if n.parent == tree.NoParent || !tree.IsCompound(s.name(idx)) {
			continue
		}
		p := s.nodes[n.parent]
		p.children = removeChild(p.children, idx)
		p.children = append(p.children, n.children...)
		s.reattach(n, n.children)
		marked[idx] = struct{}{}
	}
	res := s.names(marked)
	s.drop(marked)
	return res
}

// RemoveCollapsibleNodes runs one pass that removes non-root nodes with
// a single child, then one pass that removes nodes which are the only
// child of their parent. Nodes from keep are never removed. Chains that
// become collapsible after a pass stay in place. It returns names of
// all removed nodes.
func (s *Subtree) RemoveCollapsibleNodes(keep map[string]struct{}) map[string]struct{} {
	keepIdx := s.indices(keep)
	res := make(map[string]struct{})

	marked := make(map[int]struct{})
	for _, idx := range s.order {
		n := s.nodes[idx]
		if _, ok := keepIdx[idx]; ok {
			continue
		}
		if len(n.children) != 1 || n.parent == tree.NoParent {
			continue
		}
		p := s.nodes[n.parent]
		p.children = removeChild(p.children, idx)
		p.children = append(p.children, n.children[0])
		s.reattach(n, n.children)
		marked[idx] = struct{}{}
	}
	for name := range s.names(marked) {
		res[name] = struct{}{}
	}
	s.drop(marked)

	marked = make(map[int]struct{})
	for _, idx := range s.order {
		n := s.nodes[idx]
		if _, ok := keepIdx[idx]; ok {
			continue
		}
		if n.parent == tree.NoParent || len(s.nodes[n.parent].children) != 1 {
			continue
		}
		p := s.nodes[n.parent]
		p.children = n.children
		s.reattach(n, n.children)
		marked[idx] = struct{}{}
	}
	for name := range s.names(marked) {
		res[name] = struct{}{}
	}
	s.drop(marked)
	return res
}

// AddExtraChildren gives nodes with less than target children some of
// their original children back. Candidates come in full-tree order and
// must have an image, must not be compound and must not be excluded.
// Added nodes are leaves. It returns the number of added nodes.
func (s *Subtree) AddExtraChildren(
	target int,
	hasImage func(string) bool,
	exclude map[string]struct{},
) int {
	var added []int
	for _, idx := range s.order {
		n := s.nodes[idx]
		need := target - len(n.children)
		if need <= 0 {
			continue
		}
		var extra []int
		for _, c := range s.full.Nodes[idx].Children {
			if len(extra) == need {
				break
			}
			name := s.name(c)
			if _, ok := s.nodes[c]; ok {
				continue
			}
			if _, ok := exclude[name]; ok {
				continue
			}
			if tree.IsCompound(name) || !hasImage(name) {
				continue
			}
			extra = append(extra, c)
		}
		n.children = append(n.children, extra...)
		added = append(added, extra...)
	}
	for _, c := range added {
		fn := &s.full.Nodes[c]
		s.add(c, &node{parent: fn.Parent, support: fn.Support})
	}
	return len(added)
}

// TrimIfManyChildren removes children of nodes that have more than
// threshold children, starting from the ones with the fewest tips.
// Children from keep are never removed, so a node can stay above the
// threshold. Descendants of removed children are removed too. It
// returns the number of removed leaves. Tips must be up to date.
func (s *Subtree) TrimIfManyChildren(threshold int, keep map[string]struct{}) int {
	root := s.full.Root
	if _, ok := s.nodes[root]; !ok {
		return 0
	}
	keepIdx := s.indices(keep)
	marked := make(map[int]struct{})
	var leaves int

	stack := []int{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := s.nodes[idx]

		if numToTrim := len(n.children) - threshold; numToTrim > 0 {
			var cands []int
			for _, c := range n.children {
				if _, ok := keepIdx[c]; !ok {
					cands = append(cands, c)
				}
			}
			slices.SortStableFunc(cands, func(a, b int) int {
				return s.nodes[b].tips - s.nodes[a].tips
			})
			numToTrim = min(numToTrim, len(cands))
			trim := make(map[int]struct{}, numToTrim)
			for _, c := range cands[len(cands)-numToTrim:] {
				trim[c] = struct{}{}
				leaves += s.markSubtree(c, marked)
			}
			n.children = slices.DeleteFunc(n.children, func(c int) bool {
				_, ok := trim[c]
				return ok
			})
		}
		stack = append(stack, n.children...)
	}
	s.drop(marked)
	return leaves
}

// markSubtree marks a node with its descendants and returns the number
// of marked leaves.
func (s *Subtree) markSubtree(idx int, marked map[int]struct{}) int {
	var leaves int
	stack := []int{idx}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		marked[i] = struct{}{}
		ch := s.nodes[i].children
		if len(ch) == 0 {
			leaves++
		}
		stack = append(stack, ch...)
	}
	return leaves
}

// UpdateTips recomputes tips from the root down to leaves. A node
// without children has one tip.
func (s *Subtree) UpdateTips() {
	root := s.full.Root
	if _, ok := s.nodes[root]; !ok {
		return
	}
	var order []int
	stack := []int{root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, idx)
		stack = append(stack, s.nodes[idx].children...)
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := s.nodes[order[i]]
		var tips int
		for _, c := range n.children {
			tips += s.nodes[c].tips
		}
		n.tips = max(1, tips)
	}
}

// Tips returns the tips of a node or 0 if the node is absent.
func (s *Subtree) Tips(name string) int {
	idx, ok := s.full.Index(name)
	if !ok {
		return 0
	}
	if n, ok := s.nodes[idx]; ok {
		return n.tips
	}
	return 0
}
