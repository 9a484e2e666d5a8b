package otol_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gnames/gntol/pkg/otol"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nodeRow struct {
	name, id string
	tips     int
}

func build(t *testing.T, tre, ann, picked string) (*tree.Tree, error) {
	t.Helper()
	in := otol.Input{
		Tree:        strings.NewReader(tre),
		Annotations: strings.NewReader(ann),
	}
	if picked != "" {
		in.PickedNames = strings.NewReader(picked)
	}
	res, _, err := otol.Build(in)
	return res, err
}

func rows(tr *tree.Tree) []nodeRow {
	var res []nodeRow
	for _, n := range tr.Nodes {
		res = append(res, nodeRow{n.Name, n.ID, n.Tips})
	}
	return res
}

func TestBuildNewick(t *testing.T) {
	assert := assert.New(t)
	tre := `
	(
		'land plants ott2',
		(
			'TRAVELLER''s tree ott100',
			(domestic_banana_ott4, (lemon_ott6, orange_ott7)citrus_ott5)mrcaott4ott5
		) mrcaott100ott4,
		'Highly  Unu2u8| name!!  ott999',
		'citrus ott230'
	)cellular_organisms_ott1;`

	tr, err := build(t, tre, `{"nodes": {}}`, "")
	require.Nil(t, err)
	assert.Nil(tr.Validate())

	assert.ElementsMatch([]nodeRow{
		{"land plants", "ott2", 1},
		{"traveller's tree", "ott100", 1},
		{"domestic banana", "ott4", 1},
		{"lemon", "ott6", 1},
		{"orange", "ott7", 1},
		{"citrus", "ott5", 2},
		{"[citrus + domestic banana]", "mrcaott4ott5", 3},
		{"[citrus + traveller's tree]", "mrcaott100ott4", 4},
		{"highly  unu2u8| name!! ", "ott999", 1},
		{"citrus [2]", "ott230", 1},
		{"cellular organisms", "ott1", 7},
	}, rows(tr))

	assert.ElementsMatch([]tree.Edge{
		{Parent: "cellular organisms", Child: "land plants"},
		{Parent: "cellular organisms", Child: "[citrus + traveller's tree]"},
		{Parent: "cellular organisms", Child: "highly  unu2u8| name!! "},
		{Parent: "cellular organisms", Child: "citrus [2]"},
		{Parent: "[citrus + traveller's tree]", Child: "traveller's tree"},
		{Parent: "[citrus + traveller's tree]", Child: "[citrus + domestic banana]"},
		{Parent: "[citrus + domestic banana]", Child: "domestic banana"},
		{Parent: "[citrus + domestic banana]", Child: "citrus"},
		{Parent: "citrus", Child: "lemon"},
		{Parent: "citrus", Child: "orange"},
	}, tr.Edges())

	assert.Equal("cellular organisms", tr.RootName())
	assert.True(tr.Nodes[tr.Root].Support)
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		msg string
		tre string
	}{
		{"names without ids", "(A,B,(C,D));"},
		{"unexpected end", "(a_ott1,b_ott2"},
		{"unclosed quote", "('a ott1,b_ott2)c_ott3;"},
		{"empty name", "(a_ott1,b_ott2);"},
		{"trailing data", "(a_ott1,b_ott2)c_ott3; d_ott4"},
		{"anonymous with one child", "((a_ott1)mrcaott1ott2,b_ott3)c_ott4;"},
	}
	for _, v := range tests {
		_, err := build(t, v.tre, `{"nodes": {}}`, "")
		assert.NotNil(t, err, v.msg)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := build(t, "(a_ott1, B)c_ott3;", `{"nodes": {}}`, "")
	require.NotNil(t, err)
	var perr *otol.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, int64(9), perr.Pos)
	assert.Contains(t, perr.Error(), "invalid node name 'b'")
}

func TestBuildAnnotations(t *testing.T) {
	assert := assert.New(t)
	tre := "(two_ott2, three_ott3, four_ott4)one_ott1;"
	ann := `
	{
		"date_completed": "xxx",
		"nodes": {
			"ott3": {
				"supported_by": {
					"tree1": "node1"
				}
			},
			"ott4": {
				"supported_by": {
					"tree1": "node2",
					"tree2": "node100"
				},
				"conflicts_with": {
					"tree3": ["x", "y"]
				}
			}
		}
	}`
	tr, err := build(t, tre, ann, "")
	require.Nil(t, err)
	assert.ElementsMatch([]nodeRow{
		{"one", "ott1", 3},
		{"two", "ott2", 1},
		{"three", "ott3", 1},
		{"four", "ott4", 1},
	}, rows(tr))
	assert.ElementsMatch([]tree.Edge{
		{Parent: "one", Child: "two", Support: false},
		{Parent: "one", Child: "three", Support: true},
		{Parent: "one", Child: "four", Support: false},
	}, tr.Edges())
}

func TestBuildAnnotationsInvalid(t *testing.T) {
	tre := "(two_ott2, three_ott3)one_ott1;"
	tests := []struct {
		msg string
		ann string
	}{
		{"no nodes", `{"date_completed": "xxx"}`},
		{"broken json", `{"nodes": {"ott2": `},
		{"nodes not object", `{"nodes": []}`},
	}
	for _, v := range tests {
		_, err := build(t, tre, v.ann, "")
		assert.NotNil(t, err, v.msg)
	}
}

func TestBuildPickedNames(t *testing.T) {
	assert := assert.New(t)
	tre := "(one_ott2, two_ott3)one_ott1;"
	tr, err := build(t, tre, `{"nodes": {}}`, "one|ott2\n")
	require.Nil(t, err)
	assert.ElementsMatch([]nodeRow{
		{"one [2]", "ott1", 2},
		{"one", "ott2", 1},
		{"two", "ott3", 1},
	}, rows(tr))
	assert.ElementsMatch([]tree.Edge{
		{Parent: "one [2]", Child: "one"},
		{Parent: "one [2]", Child: "two"},
	}, tr.Edges())

	tr, err = build(t, tre, `{"nodes": {}}`, "")
	require.Nil(t, err)
	n, ok := tr.Node("one")
	assert.True(ok)
	assert.Equal("ott1", n.ID)
	assert.True(tr.Has("one [2]"))
}

func TestBuildProgress(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("(")
	for i := range 100_000 {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "l%d_ott%d", i, i)
	}
	sb.WriteString(")root_ott1000000;")

	var last int64
	in := otol.Input{
		Tree:        strings.NewReader(sb.String()),
		Annotations: strings.NewReader(`{"nodes": {}}`),
		Progress:    func(pos int64) { last = pos },
	}
	tr, stats, err := otol.Build(in)
	require.Nil(t, err)
	assert.Equal(t, 100_001, stats.Nodes)
	assert.Equal(t, 100_000, tr.Nodes[tr.Root].Tips)
	assert.Equal(t, int64(1<<20), last)
}
