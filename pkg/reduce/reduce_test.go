package reduce_test

import (
	"testing"

	"github.com/gnames/gntol/pkg/reduce"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nodeRow struct {
	name, id string
	tips     int
}

type edgeRow struct {
	parent, child string
	support       bool
}

// newTree creates a tree from rows. Parents must be listed before
// their children.
func newTree(t *testing.T, nodes []nodeRow, edges []edgeRow) *tree.Tree {
	t.Helper()
	res := tree.New()
	for _, n := range nodes {
		_, err := res.Add(n.name, n.id, n.tips, true)
		require.Nil(t, err)
	}
	for _, e := range edges {
		p, ok := res.Index(e.parent)
		require.True(t, ok, e.parent)
		c, ok := res.Index(e.child)
		require.True(t, ok, e.child)
		res.Link(p, c)
		res.Nodes[c].Support = e.support
	}
	require.Nil(t, res.FindRoot())
	res.UpdateTips()
	return res
}

func treeRows(tr *tree.Tree) ([]nodeRow, []edgeRow) {
	var nodes []nodeRow
	var edges []edgeRow
	for _, n := range tr.Nodes {
		nodes = append(nodes, nodeRow{n.Name, n.ID, n.Tips})
	}
	for _, e := range tr.Edges() {
		edges = append(edges, edgeRow{e.Parent, e.Child, e.Support})
	}
	return nodes, edges
}

// fixture is a tree where P, I, L and D mean picked, image, linked
// image and description:
//
//	one -> two -> threeI -> four
//	           -> fiveP
//	    -> [seven + eight] -> sevenD
//	                       -> eightP
//	    -> nine -> tenI
//	    -> elevenL
func fixture(t *testing.T) (*tree.Tree, reduce.Seeds) {
	full := newTree(t,
		[]nodeRow{
			{"one", "ott1", 6},
			{"two", "ott2", 2},
			{"three", "ott3", 1},
			{"four", "ott4", 1},
			{"five", "ott5", 1},
			{"[seven + eight]", "ott6", 2},
			{"seven", "ott7", 1},
			{"eight", "ott8", 1},
			{"nine", "ott9", 1},
			{"ten", "ott10", 1},
			{"eleven", "ott11", 1},
		},
		[]edgeRow{
			{"one", "two", true},
			{"two", "three", true},
			{"three", "four", false},
			{"two", "five", false},
			{"one", "[seven + eight]", true},
			{"[seven + eight]", "seven", false},
			{"[seven + eight]", "eight", true},
			{"one", "nine", true},
			{"nine", "ten", false},
			{"one", "eleven", true},
		},
	)
	images := map[string]bool{"three": true, "ten": true, "eleven": true}
	seeds := reduce.Seeds{
		Picked:   []string{"five", "eight"},
		Images:   []string{"three", "ten"},
		Descs:    []string{"seven"},
		HasImage: func(name string) bool { return images[name] },
	}
	return full, seeds
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		msg   string
		view  tree.View
		nodes []nodeRow
		edges []edgeRow
	}{
		{
			msg:  "picked",
			view: tree.Picked,
			nodes: []nodeRow{
				{"one", "ott1", 3},
				{"five", "ott5", 1},
				{"eight", "ott8", 1},
				{"eleven", "ott11", 1},
			},
			edges: []edgeRow{
				{"one", "five", false},
				{"one", "eight", true},
				{"one", "eleven", true},
			},
		},
		{
			msg:  "images",
			view: tree.Images,
			nodes: []nodeRow{
				{"one", "ott1", 4},
				{"two", "ott2", 2},
				{"three", "ott3", 1},
				{"five", "ott5", 1},
				{"eight", "ott8", 1},
				{"ten", "ott10", 1},
			},
			edges: []edgeRow{
				{"one", "two", true},
				{"two", "three", true},
				{"two", "five", false},
				{"one", "eight", true},
				{"one", "ten", false},
			},
		},
		{
			msg:  "trimmed",
			view: tree.Trimmed,
			nodes: []nodeRow{
				{"one", "ott1", 5},
				{"two", "ott2", 2},
				{"three", "ott3", 1},
				{"five", "ott5", 1},
				{"[seven + eight]", "ott6", 2},
				{"seven", "ott7", 1},
				{"eight", "ott8", 1},
				{"ten", "ott10", 1},
			},
			edges: []edgeRow{
				{"one", "two", true},
				{"two", "three", true},
				{"two", "five", false},
				{"one", "[seven + eight]", true},
				{"[seven + eight]", "seven", false},
				{"[seven + eight]", "eight", true},
				{"one", "ten", false},
			},
		},
	}

	for _, v := range tests {
		full, seeds := fixture(t)
		res, rep, err := reduce.Generate(full, v.view, seeds)
		require.Nil(t, err, v.msg)
		assert.Nil(t, res.Validate(), v.msg)
		assert.Equal(t, full.RootName(), res.RootName(), v.msg)
		assert.Equal(t, len(v.nodes), rep.Nodes, v.msg)

		nodes, edges := treeRows(res)
		assert.ElementsMatch(t, v.nodes, nodes, v.msg)
		assert.ElementsMatch(t, v.edges, edges, v.msg)
	}
}

func TestGenerateErrors(t *testing.T) {
	full, seeds := fixture(t)
	_, _, err := reduce.Generate(full, tree.Full, seeds)
	assert.NotNil(t, err)

	seeds.Picked = nil
	_, _, err = reduce.Generate(full, tree.Images, seeds)
	assert.NotNil(t, err)
}

func TestGenNodeMap(t *testing.T) {
	assert := assert.New(t)
	full, _ := fixture(t)
	s, unknown := reduce.GenNodeMap(full, []string{"four", "ten", "zzz", "four"})
	assert.Equal([]string{"zzz"}, unknown)
	assert.Equal(6, s.Len())
	for _, name := range []string{"one", "two", "three", "four", "nine", "ten"} {
		assert.True(s.Has(name), name)
	}
	assert.False(s.Has("five"))
}

func TestRemoveCollapsibleNodes(t *testing.T) {
	assert := assert.New(t)
	// a -> b -> c -> d
	//           -> e
	full := newTree(t,
		[]nodeRow{{"a", "1", 0}, {"b", "2", 0}, {"c", "3", 0}, {"d", "4", 0}, {"e", "5", 0}},
		[]edgeRow{{"a", "b", true}, {"b", "c", false}, {"c", "d", true}, {"c", "e", true}},
	)

	s, _ := reduce.GenNodeMap(full, []string{"d", "e"})
	removed := s.RemoveCollapsibleNodes(map[string]struct{}{"b": {}})
	assert.True(s.Has("b"))
	assert.False(s.Has("c"))
	assert.Contains(removed, "c")

	// the first pass moves c under a, the second one removes c as the
	// only child of a
	s, _ = reduce.GenNodeMap(full, []string{"d", "e"})
	removed = s.RemoveCollapsibleNodes(nil)
	assert.False(s.Has("b"))
	assert.False(s.Has("c"))
	assert.Len(removed, 2)

	s.UpdateTips()
	res, err := s.Tree()
	assert.Nil(err)
	_, edges := treeRows(res)
	assert.ElementsMatch([]edgeRow{{"a", "d", false}, {"a", "e", false}}, edges)
}

func TestRemoveCompositeNodes(t *testing.T) {
	full, _ := fixture(t)
	s, _ := reduce.GenNodeMap(full, []string{"seven", "eight"})
	removed := s.RemoveCompositeNodes()
	assert.Equal(t, map[string]struct{}{"[seven + eight]": {}}, removed)
	s.UpdateTips()
	res, err := s.Tree()
	require.Nil(t, err)
	_, edges := treeRows(res)
	assert.ElementsMatch(t, []edgeRow{
		{"one", "seven", false},
		{"one", "eight", true},
	}, edges)
}

func TestTrimIfManyChildren(t *testing.T) {
	assert := assert.New(t)
	// r -> a -> a1, a2, a3
	//   -> b
	//   -> c
	//   -> d -> d1, d2
	//   -> e
	full := newTree(t,
		[]nodeRow{
			{"r", "0", 0}, {"a", "1", 0}, {"a1", "2", 0}, {"a2", "3", 0},
			{"a3", "4", 0}, {"b", "5", 0}, {"c", "6", 0}, {"d", "7", 0},
			{"d1", "8", 0}, {"d2", "9", 0}, {"e", "10", 0},
		},
		[]edgeRow{
			{"r", "a", true}, {"a", "a1", true}, {"a", "a2", true},
			{"a", "a3", true}, {"r", "b", true}, {"r", "c", true},
			{"r", "d", true}, {"d", "d1", true}, {"d", "d2", true},
			{"r", "e", true},
		},
	)
	leaves := []string{"a1", "a2", "a3", "b", "c", "d1", "d2", "e"}

	tests := []struct {
		msg       string
		threshold int
		keep      []string
		removed   int
		present   []string
		absent    []string
	}{
		{"no trimming", 5, nil, 0, []string{"a", "b", "c", "d", "e"}, nil},
		{
			"fewest tips go first", 2, []string{"c"}, 5,
			[]string{"a", "a1", "a2", "c"},
			[]string{"a3", "b", "d", "d1", "d2", "e"},
		},
		{
			"keep wins over threshold", 1, []string{"a", "c"}, 6,
			[]string{"a", "a1", "c"}, []string{"a2", "a3", "b", "d", "e"},
		},
	}

	for _, v := range tests {
		s, _ := reduce.GenNodeMap(full, leaves)
		s.UpdateTips()
		keep := make(map[string]struct{})
		for _, k := range v.keep {
			keep[k] = struct{}{}
		}
		assert.Equal(v.removed, s.TrimIfManyChildren(v.threshold, keep), v.msg)
		for _, name := range v.present {
			assert.True(s.Has(name), v.msg+": "+name)
		}
		for _, name := range v.absent {
			assert.False(s.Has(name), v.msg+": "+name)
		}
		s.UpdateTips()
		res, err := s.Tree()
		require.Nil(t, err)
		assert.Nil(res.Validate(), v.msg)
	}
}

func TestAddExtraChildren(t *testing.T) {
	assert := assert.New(t)
	full, _ := fixture(t)
	s, _ := reduce.GenNodeMap(full, []string{"five"})
	added := s.AddExtraChildren(
		3,
		func(name string) bool { return name != "three" },
		nil,
	)
	// 'two' gets 'three' rejected, 'one' gets nine and eleven added,
	// '[seven + eight]' is compound.
	assert.Equal(2, added)
	assert.True(s.Has("nine"))
	assert.True(s.Has("eleven"))
	assert.False(s.Has("three"))
	assert.False(s.Has("[seven + eight]"))
	s.UpdateTips()
	assert.Equal(1, s.Tips("nine"))
	assert.Equal(3, s.Tips("one"))
}
