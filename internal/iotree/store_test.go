package iotree_test

import (
	"context"
	"testing"

	"github.com/gnames/gntol/internal/iotesting"
	"github.com/gnames/gntol/internal/iotree"
	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds
//
//	one -> two -> four, five
//	    -> three
func sample(t *testing.T) *tree.Tree {
	tr := tree.New()
	for _, n := range []struct {
		name, id string
		sup      bool
	}{
		{"one", "ott1", true},
		{"two", "ott2", false},
		{"three", "ott3", true},
		{"four", "ott4", true},
		{"five", "ott5", false},
	} {
		_, err := tr.Add(n.name, n.id, 1, n.sup)
		require.NoError(t, err)
	}
	link := func(p, c string) {
		pi, _ := tr.Index(p)
		ci, _ := tr.Index(c)
		tr.Link(pi, ci)
	}
	link("one", "three")
	link("one", "two")
	link("two", "four")
	link("two", "five")
	require.NoError(t, tr.FindRoot())
	tr.UpdateTips()
	return tr
}

func TestWriteLoad(t *testing.T) {
	op, _ := iotesting.Connect(t)
	ctx := context.Background()
	s := iotree.New(op)

	for _, v := range tree.Views {
		t.Run(v.String(), func(t *testing.T) {
			require.NoError(t, s.Write(ctx, v, sample(t)))

			res, err := s.Load(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, 5, res.Len())
			assert.Equal(t, "one", res.RootName())

			root, _ := res.Node("one")
			assert.Equal(t, 3, root.Tips)
			assert.True(t, root.Support)

			// children are sorted by tips
			assert.Equal(t, "two", res.Nodes[root.Children[0]].Name)
			two, _ := res.Node("two")
			assert.False(t, two.Support)
			assert.Equal(t, "ott2", two.ID)
			assert.Equal(t, "five", res.Nodes[two.Children[0]].Name)

			// rewriting replaces content
			require.NoError(t, s.Write(ctx, v, sample(t)))
			res, err = s.Load(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, 5, res.Len())
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	op, _ := iotesting.Connect(t)
	_, err := iotree.New(op).Load(context.Background(), tree.Trimmed)
	assert.Error(t, err)
}

func TestWriteLinked(t *testing.T) {
	op, _ := iotesting.Connect(t)
	ctx := context.Background()
	s := iotree.New(op)
	require.NoError(t, s.Write(ctx, tree.Images, sample(t)))

	linked := map[string]imgref.ImageRef{
		"one":   imgref.NewSingle("ott4"),
		"two":   imgref.NewPair("ott4", ""),
		"three": {},
	}
	require.NoError(t, s.WriteLinked(ctx, tree.Images, linked))

	names, err := s.LinkedNames(ctx, tree.Images)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, names)

	var stored string
	err = op.Pool().QueryRow(ctx,
		"SELECT otol_ids FROM linked_imgs_i WHERE name = 'two'").Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, "ott4,", stored)

	// writing the tree again clears linked images
	require.NoError(t, s.Write(ctx, tree.Images, sample(t)))
	names, err = s.LinkedNames(ctx, tree.Images)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSeeds(t *testing.T) {
	op, _ := iotesting.Connect(t)
	ctx := context.Background()
	s := iotree.New(op)
	require.NoError(t, s.Write(ctx, tree.Full, sample(t)))

	stmts := []string{
		`INSERT INTO node_imgs (name, img_id, src) VALUES
			('four', 1, 'eol'), ('three', 2, 'enwiki'), ('absent', 3, 'eol')`,
		`INSERT INTO wiki_ids (name, id) VALUES ('two', 20), ('five', 50)`,
		`INSERT INTO descs (wiki_id, "desc", from_dbp) VALUES (20, 'two', true)`,
		`INSERT INTO names (name, alt_name, pref_alt, src) VALUES
			('five', 'quinque', false, 'eol'),
			('four', 'quattuor', false, 'eol'),
			('two', 'quattuor', true, 'eol')`,
	}
	for _, q := range stmts {
		_, err := op.Pool().Exec(ctx, q)
		require.NoError(t, err)
	}

	direct, err := s.DirectImages(ctx, tree.Full)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"four": "ott4", "three": "ott3"}, direct)

	imgs, err := s.ImageNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"absent", "four", "three"}, imgs)

	descs, err := s.DescNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, descs)

	picked, unknown, err := s.ResolvePicked(ctx,
		[]string{"one", "quinque", "quattuor", "nothing", "five"})
	require.NoError(t, err)
	assert.Equal(t, []string{"five", "one", "two"}, picked)
	assert.Equal(t, []string{"nothing"}, unknown)

	names, err := s.ViewNames(ctx, tree.Picked)
	require.NoError(t, err)
	assert.Empty(t, names)
	names, err = s.ViewNames(ctx, tree.Full)
	require.NoError(t, err)
	assert.Contains(t, names, "five")
}
