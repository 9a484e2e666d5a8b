package query

import (
	"context"

	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/tree"
)

// LookupInfo returns a node with its description and image. For a
// compound node the description and image come from the sub-nodes. It
// returns nil for unknown names.
func (e *Engine) LookupInfo(
	ctx context.Context,
	view tree.View,
	name string,
) (*InfoResponse, error) {
	var res *InfoResponse
	err := e.withReader(ctx, view, func(r Reader) error {
		var err error
		res, err = lookupInfo(ctx, r, name)
		return err
	})
	return res, err
}

func lookupInfo(ctx context.Context, r Reader, name string) (*InfoResponse, error) {
	nodes, err := lookupNodes(ctx, r, []string{name})
	if err != nil {
		return nil, err
	}
	node, ok := nodes[name]
	if !ok {
		return nil, nil
	}

	res := &InfoResponse{
		Node:         NodeInfo{Node: node},
		SubNodesInfo: []*NodeInfo{},
	}
	a, b, isCompound := tree.SplitCompound(name)
	if !isCompound {
		if err = addDetails(ctx, r, map[string]*NodeInfo{name: &res.Node}); err != nil {
			return nil, err
		}
		return res, nil
	}

	subs, err := lookupNodes(ctx, r, []string{a, b})
	if err != nil {
		return nil, err
	}
	infos := make(map[string]*NodeInfo)
	for _, sub := range []string{a, b} {
		n, ok := subs[sub]
		if !ok {
			res.SubNodesInfo = append(res.SubNodesInfo, nil)
			continue
		}
		info := &NodeInfo{Node: n}
		infos[sub] = info
		res.SubNodesInfo = append(res.SubNodesInfo, info)
	}
	if err = addDetails(ctx, r, infos); err != nil {
		return nil, err
	}
	return res, nil
}

// addDetails attaches descriptions and image metadata. Image metadata
// belongs to the node whose image is shown, which can be a descendant.
func addDetails(ctx context.Context, r Reader, infos map[string]*NodeInfo) error {
	if len(infos) == 0 {
		return nil
	}
	names := make([]string, 0, len(infos))
	imgIDs := make(map[string][]string)
	for name, info := range infos {
		names = append(names, name)
		if ref := info.Node.ImageName; ref.Kind == imgref.Single {
			imgIDs[ref.First] = append(imgIDs[ref.First], name)
		}
	}

	descs, err := r.Descriptions(ctx, names)
	if err != nil {
		return err
	}
	for name, d := range descs {
		if info, ok := infos[name]; ok {
			info.Description = &d
		}
	}

	if len(imgIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(imgIDs))
	for id := range imgIDs {
		ids = append(ids, id)
	}
	imgs, err := r.Images(ctx, ids)
	if err != nil {
		return err
	}
	for id, img := range imgs {
		for _, name := range imgIDs[id] {
			infos[name].Image = &img
		}
	}
	return nil
}
