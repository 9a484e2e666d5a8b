package otol

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gnames/gntol/pkg/tree"
)

// readPickedNames reads 'name|ottID' lines that decide which node keeps
// a name shared by several nodes.
func readPickedNames(r io.Reader) (map[string]string, error) {
	res := make(map[string]string)
	if r == nil {
		return res, nil
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, id, _ := strings.Cut(line, "|")
		res[name] = id
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read picked names: %w", err)
	}
	return res, nil
}

// disambiguate renames nodes that share a display name. The node
// picked in the override map keeps the name, otherwise the one with
// the most tips does. Others get ' [2]', ' [3]'... in parse order.
func disambiguate(nodes []rawNode, picked map[string]string) int {
	byName := make(map[string][]int)
	var order []string
	for i := range nodes {
		name := nodes[i].name
		if isAnonymous(nodes[i].id) {
			continue
		}
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = append(byName[name], i)
	}

	var renamed int
	for _, name := range order {
		idxs := byName[name]
		if len(idxs) < 2 {
			continue
		}
		keepID, ok := picked[name]
		if !ok {
			best := idxs[0]
			for _, i := range idxs[1:] {
				if nodes[i].tips > nodes[best].tips {
					best = i
				}
			}
			keepID = nodes[best].id
		}
		counter := 2
		for _, i := range idxs {
			if nodes[i].id == keepID {
				continue
			}
			nodes[i].name = fmt.Sprintf("%s [%d]", nodes[i].name, counter)
			counter++
			renamed++
		}
	}
	return renamed
}

// nameCompounds gives anonymous nodes names made of the names of their
// two children with the most tips. Nodes come in post-order, so the
// children of a node are already renamed when the node is reached.
// A child name that is compound itself contributes its first part.
func nameCompounds(nodes []rawNode) (int, error) {
	var res int
	for i := range nodes {
		n := &nodes[i]
		if !isAnonymous(n.id) {
			continue
		}
		if len(n.children) < 2 {
			return res, fmt.Errorf(
				"anonymous node '%s' has less than 2 children", n.id,
			)
		}
		first, second := largestTwo(nodes, n.children)
		n.name = tree.CompoundName(
			representative(nodes[first].name),
			representative(nodes[second].name),
		)
		res++
	}
	return res, nil
}

// largestTwo returns the two children with the most tips. Ties go to
// the child that comes first.
func largestTwo(nodes []rawNode, children []int) (int, int) {
	tips := make([]int, len(children))
	for i, c := range children {
		tips[i] = nodes[c].tips
	}
	i1 := slices.Index(tips, slices.Max(tips))
	tips[i1] = 0
	i2 := slices.Index(tips, slices.Max(tips))
	return children[i1], children[i2]
}

func representative(name string) string {
	if a, _, ok := tree.SplitCompound(name); ok {
		return a
	}
	return name
}
