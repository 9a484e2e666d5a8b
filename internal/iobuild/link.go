package iobuild

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/imglink"
	"github.com/gnames/gntol/pkg/tree"
)

// Link resolves images that nodes of a view borrow from descendants
// and replaces linked images of the view.
func (b *Builder) Link(ctx context.Context, view tree.View) error {
	tr, err := b.store.Load(ctx, view)
	if err != nil {
		return err
	}
	direct, err := b.store.DirectImages(ctx, view)
	if err != nil {
		return err
	}
	if len(direct) == 0 {
		slog.Warn("No node images found, populate auxiliary data first",
			"view", view.String())
	}

	linked := imglink.Resolve(tr, direct)
	if err = b.store.WriteLinked(ctx, view, linked); err != nil {
		return LinkError(view, err)
	}

	slog.Info("Linked images",
		"view", view.String(),
		"direct", len(direct),
		"linked", len(linked),
	)
	gn.Info("Linked <em>%s</em> images for <em>%s</em> tree",
		humanize.Comma(int64(len(linked))), view)
	return nil
}
