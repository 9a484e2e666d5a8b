package reduce

import (
	"errors"

	"github.com/gnames/gntol/pkg/tree"
)

const (
	// PickedFanOut is the number of children the picked view tries to
	// give every node.
	PickedFanOut = 3

	// ImagesThreshold limits the number of children in the images view.
	ImagesThreshold = 300

	// TrimmedThreshold limits the number of children in the trimmed view.
	TrimmedThreshold = 600
)

// Seeds are sets of node names that decide what stays in a view.
type Seeds struct {
	// Picked are names selected by hand.
	Picked []string

	// Images are names of nodes with a direct image.
	Images []string

	// Descs are names of nodes with a description.
	Descs []string

	// HasImage reports if a full-tree node has a direct or linked
	// image. It is used by the picked view only.
	HasImage func(string) bool
}

// Report summarizes a reduction.
type Report struct {
	View    tree.View
	Seeds   int
	Unknown int
	Added   int
	Trimmed int
	Nodes   int
}

// Generate builds one reduced view of the full tree.
func Generate(full *tree.Tree, view tree.View, seeds Seeds) (*tree.Tree, Report, error) {
	if len(seeds.Picked) == 0 {
		return nil, Report{View: view}, errors.New("no picked names found")
	}
	switch view {
	case tree.Picked:
		return GenPicked(full, seeds)
	case tree.Images:
		return GenImagesOnly(full, seeds)
	case tree.Trimmed:
		return GenWeaklyTrimmed(full, seeds)
	default:
		return nil, Report{View: view}, errors.New("full tree cannot be reduced")
	}
}

// GenPicked builds a view from picked names, their ancestors and a few
// children with images.
func GenPicked(full *tree.Tree, seeds Seeds) (*tree.Tree, Report, error) {
	rep := Report{View: tree.Picked, Seeds: len(seeds.Picked)}
	s, unknown := GenNodeMap(full, seeds.Picked)
	rep.Unknown = len(unknown)

	removed := s.RemoveCompositeNodes()
	for name := range s.RemoveCollapsibleNodes(setOf(seeds.Picked)) {
		removed[name] = struct{}{}
	}

	hasImage := seeds.HasImage
	if hasImage == nil {
		hasImage = func(string) bool { return false }
	}
	rep.Added = s.AddExtraChildren(PickedFanOut, hasImage, removed)
	s.UpdateTips()

	return finish(s, rep)
}

// GenImagesOnly builds a view from nodes with images and picked names.
func GenImagesOnly(full *tree.Tree, seeds Seeds) (*tree.Tree, Report, error) {
	names := union(seeds.Images, seeds.Picked)
	rep := Report{View: tree.Images, Seeds: len(names)}
	s, unknown := GenNodeMap(full, names)
	rep.Unknown = len(unknown)

	picked := setOf(seeds.Picked)
	s.RemoveCompositeNodes()
	s.RemoveCollapsibleNodes(picked)
	s.UpdateTips()
	rep.Trimmed = s.TrimIfManyChildren(ImagesThreshold, picked)
	s.UpdateTips()

	return finish(s, rep)
}

// GenWeaklyTrimmed builds a view from nodes with images, descriptions
// and picked names. Compound nodes stay. Trimming spares every node on
// a path from an image or picked node to the root.
func GenWeaklyTrimmed(full *tree.Tree, seeds Seeds) (*tree.Tree, Report, error) {
	names := union(seeds.Images, seeds.Descs, seeds.Picked)
	rep := Report{View: tree.Trimmed, Seeds: len(names)}
	s, unknown := GenNodeMap(full, names)
	rep.Unknown = len(unknown)

	strong := s.ancestry(union(seeds.Images, seeds.Picked))
	s.RemoveCollapsibleNodes(setOf(names))
	s.UpdateTips()
	rep.Trimmed = s.TrimIfManyChildren(TrimmedThreshold, strong)
	s.UpdateTips()

	return finish(s, rep)
}

// ancestry returns names of the given nodes with all their ancestors
// within the subtree.
func (s *Subtree) ancestry(names []string) map[string]struct{} {
	res := make(map[string]struct{})
	for _, name := range names {
		idx, ok := s.full.Index(name)
		if !ok {
			continue
		}
		for idx != tree.NoParent {
			n, ok := s.nodes[idx]
			if !ok {
				break
			}
			name = s.name(idx)
			if _, ok := res[name]; ok {
				break
			}
			res[name] = struct{}{}
			idx = n.parent
		}
	}
	return res
}

func finish(s *Subtree, rep Report) (*tree.Tree, Report, error) {
	res, err := s.Tree()
	if err != nil {
		return nil, rep, err
	}
	rep.Nodes = res.Len()
	return res, rep, nil
}

func setOf(names []string) map[string]struct{} {
	res := make(map[string]struct{}, len(names))
	for _, name := range names {
		res[name] = struct{}{}
	}
	return res
}

// union returns unique names from all lists.
func union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, l := range lists {
		for _, name := range l {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			res = append(res, name)
		}
	}
	return res
}
