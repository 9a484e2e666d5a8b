package iobuild

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntol/internal/iofs"
	"github.com/gnames/gntol/pkg/reduce"
	"github.com/gnames/gntol/pkg/tree"
)

// Reduce generates reduced views from the full one. Without arguments
// it generates all of them.
func (b *Builder) Reduce(ctx context.Context, views ...tree.View) error {
	if len(views) == 0 {
		views = tree.ReducedViews
	}
	for _, v := range views {
		if v == tree.Full {
			return FullReduceError()
		}
	}
	start := time.Now()
	b.store.Bar = b.Bar

	full, err := b.store.Load(ctx, tree.Full)
	if err != nil {
		return err
	}
	seeds, err := b.seeds(ctx, slices.Contains(views, tree.Picked))
	if err != nil {
		return err
	}

	for _, v := range views {
		tr, rep, err := reduce.Generate(full, v, seeds)
		if err != nil {
			return ReduceError(v, err)
		}
		if err = b.store.Write(ctx, v, tr); err != nil {
			return err
		}
		slog.Info("Generated tree view",
			"view", v.String(),
			"seeds", rep.Seeds,
			"unknown", rep.Unknown,
			"added", rep.Added,
			"trimmed", rep.Trimmed,
			"nodes", rep.Nodes,
		)
		gn.Info("Generated <em>%s</em> tree with <em>%s</em> nodes",
			v, humanize.Comma(int64(rep.Nodes)))
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Reduced views are generated", "duration", dur)
	gn.Message("Run <em>link</em> for every generated tree to restore linked images")
	return nil
}

// seeds collects names reduced views are grown from. Unless the picked
// view is regenerated, a stored picked view provides the picked names.
func (b *Builder) seeds(ctx context.Context, withPicked bool) (reduce.Seeds, error) {
	var res reduce.Seeds
	var err error

	if !withPicked {
		if res.Picked, err = b.store.ViewNames(ctx, tree.Picked); err != nil {
			return res, err
		}
	}
	if len(res.Picked) > 0 {
		slog.Info("Picked names come from the stored picked tree",
			"names", len(res.Picked))
	} else if res.Picked, err = b.pickedFromFile(ctx); err != nil {
		return res, err
	}

	if res.Images, err = b.store.ImageNames(ctx); err != nil {
		return res, err
	}
	if res.Descs, err = b.store.DescNames(ctx); err != nil {
		return res, err
	}
	linked, err := b.store.LinkedNames(ctx, tree.Full)
	if err != nil {
		return res, err
	}
	if len(linked) == 0 {
		slog.Warn("Full tree has no linked images, run link for full tree first")
	}

	hasImage := make(map[string]struct{}, len(res.Images)+len(linked))
	for _, names := range [][]string{res.Images, linked} {
		for _, n := range names {
			hasImage[n] = struct{}{}
		}
	}
	res.HasImage = func(name string) bool {
		_, ok := hasImage[name]
		return ok
	}
	return res, nil
}

// pickedFromFile resolves names listed in the picked nodes file.
func (b *Builder) pickedFromFile(ctx context.Context) ([]string, error) {
	path := b.cfg.BuildPath(b.cfg.Build.PickedNodesFile)
	lines, err := iofs.ReadLines(path)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i] = strings.ToLower(lines[i])
	}
	picked, unknown, err := b.store.ResolvePicked(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		gn.Warn("<em>%d</em> picked names are not in the tree", len(unknown))
	}
	if len(picked) == 0 {
		return nil, NoPickedError(path)
	}
	return picked, nil
}
