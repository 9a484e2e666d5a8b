package imglink_test

import (
	"testing"

	"github.com/gnames/gntol/pkg/imglink"
	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T, edges [][2]string) *tree.Tree {
	t.Helper()
	res := tree.New()
	idx := func(name string) int {
		if i, ok := res.Index(name); ok {
			return i
		}
		i, err := res.Add(name, "", 0, true)
		require.Nil(t, err)
		return i
	}
	for _, e := range edges {
		p := idx(e[0])
		c := idx(e[1])
		res.Link(p, c)
	}
	require.Nil(t, res.FindRoot())
	res.UpdateTips()
	return res
}

// one -> two -> sixI
//            -> seven
//            -> eight
//     -> threeI
//     -> [nine + ten] -> nineI
//                     -> ten
//     -> fiveI -> [twelve + thirteen] -> twelveI
//                                     -> thirteenI
func TestResolve(t *testing.T) {
	tr := newTree(t, [][2]string{
		{"one", "two"},
		{"one", "three"},
		{"one", "[nine + ten]"},
		{"one", "five"},
		{"two", "six"},
		{"two", "seven"},
		{"two", "eight"},
		{"[nine + ten]", "nine"},
		{"[nine + ten]", "ten"},
		{"five", "[twelve + thirteen]"},
		{"[twelve + thirteen]", "twelve"},
		{"[twelve + thirteen]", "thirteen"},
	})
	direct := map[string]string{
		"six":      "ott6",
		"three":    "ott3",
		"nine":     "ott9",
		"five":     "ott5",
		"twelve":   "ott12",
		"thirteen": "ott13",
	}

	res := imglink.Resolve(tr, direct)
	assert.Equal(t, map[string]imgref.ImageRef{
		"one":                 imgref.NewSingle("ott6"),
		"two":                 imgref.NewSingle("ott6"),
		"[nine + ten]":        imgref.NewPair("ott9", ""),
		"[twelve + thirteen]": imgref.NewPair("ott12", "ott13"),
	}, res)

	stored := make(map[string]string)
	for k, v := range res {
		stored[k] = v.String()
	}
	assert.Equal(t, "ott9,", stored["[nine + ten]"])
	assert.Equal(t, "ott12,ott13", stored["[twelve + thirteen]"])
}

func TestResolveCompoundWithoutSubImages(t *testing.T) {
	// r -> [a + b] -> c -> dI
	//              -> a
	//              -> b
	tr := newTree(t, [][2]string{
		{"r", "[a + b]"},
		{"[a + b]", "c"},
		{"[a + b]", "a"},
		{"[a + b]", "b"},
		{"c", "d"},
	})
	res := imglink.Resolve(tr, map[string]string{"d": "ott4", "unknown": "ott0"})
	_, ok := res["[a + b]"]
	assert.False(t, ok)
	// compound images do not go further up, but the generic candidate
	// chain does
	assert.Equal(t, imgref.NewSingle("ott4"), res["c"])
	assert.Equal(t, imgref.NewSingle("ott4"), res["r"])
}

func TestResolveMostTipsWins(t *testing.T) {
	// r -> aI
	//   -> b -> b1I
	//        -> b2
	//   -> c -> c1
	//        -> c2I
	tr := newTree(t, [][2]string{
		{"r", "a"},
		{"r", "b"},
		{"r", "c"},
		{"b", "b1"},
		{"b", "b2"},
		{"c", "c1"},
		{"c", "c2"},
	})
	direct := map[string]string{"a": "ott1", "b1": "ott2", "c2": "ott3"}
	res := imglink.Resolve(tr, direct)
	assert.Equal(t, imgref.NewSingle("ott2"), res["b"])
	assert.Equal(t, imgref.NewSingle("ott3"), res["c"])
	// b and c have 2 tips, b comes first
	assert.Equal(t, imgref.NewSingle("ott2"), res["r"])
	_, ok := res["a"]
	assert.False(t, ok)
}
