// Package otol builds the full tree of life from an Open Tree of Life
// release: a Newick dump of the labelled supertree, an annotations
// document with phylogenetic support data, and an optional file that
// resolves ambiguous names.
package otol

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gnames/gntol/pkg/tree"
)

// anonPrefix starts ids of nodes that have no name in the release.
const anonPrefix = "mrca"

// Input provides the data of a release.
type Input struct {
	// Tree is the Newick dump.
	Tree io.Reader

	// Annotations is a JSON document with support data.
	Annotations io.Reader

	// PickedNames contains 'name|ottID' lines, it can be nil.
	PickedNames io.Reader

	// Progress is called periodically with the number of consumed
	// bytes of Tree. It can be nil.
	Progress func(int64)
}

// Stats summarizes a build.
type Stats struct {
	Nodes     int
	Renamed   int
	Compounds int
	Supported int
}

// Build parses a release and returns the full tree. Any malformed
// input aborts the build.
func Build(in Input) (*tree.Tree, Stats, error) {
	var stats Stats
	nodes, err := parseNewick(in.Tree, in.Progress)
	if err != nil {
		return nil, stats, err
	}
	stats.Nodes = len(nodes)
	slog.Info("Parsed tree", "nodes", len(nodes))

	picked, err := readPickedNames(in.PickedNames)
	if err != nil {
		return nil, stats, err
	}
	stats.Renamed = disambiguate(nodes, picked)

	stats.Compounds, err = nameCompounds(nodes)
	if err != nil {
		return nil, stats, err
	}

	supported, err := readSupported(in.Annotations)
	if err != nil {
		return nil, stats, err
	}

	res := tree.New()
	for _, n := range nodes {
		_, sup := supported[n.id]
		if sup {
			stats.Supported++
		}
		if _, err = res.Add(n.name, n.id, n.tips, sup); err != nil {
			return nil, stats, fmt.Errorf("node '%s': %w", n.id, err)
		}
	}
	for i, n := range nodes {
		for _, c := range n.children {
			res.Link(i, c)
		}
	}
	if err = res.FindRoot(); err != nil {
		return nil, stats, err
	}
	res.Nodes[res.Root].Support = true
	return res, stats, nil
}
