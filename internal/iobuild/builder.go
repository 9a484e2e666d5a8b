// Package iobuild runs the tree lifecycle phases: building the full
// tree from a release, generating reduced views and resolving linked
// images. It connects pure tree algorithms to files and storage.
package iobuild

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntol/internal/iofs"
	"github.com/gnames/gntol/internal/iotree"
	"github.com/gnames/gntol/pkg/config"
	"github.com/gnames/gntol/pkg/db"
	"github.com/gnames/gntol/pkg/otol"
	"github.com/gnames/gntol/pkg/tree"
)

// Builder implements Builder, Reducer and Linker lifecycle phases.
type Builder struct {
	cfg   *config.Config
	store *iotree.Store

	// Bar enables terminal progress bars.
	Bar bool
}

// New creates a Builder on top of a connected operator.
func New(cfg *config.Config, op db.Operator) *Builder {
	return &Builder{cfg: cfg, store: iotree.New(op)}
}

// Build parses the release files and replaces the full view.
func (b *Builder) Build(ctx context.Context) error {
	start := time.Now()
	b.store.Bar = b.Bar

	treePath := b.cfg.BuildPath(b.cfg.Build.TreeFile)
	treeFile, err := iofs.Open(treePath)
	if err != nil {
		return err
	}
	defer treeFile.Close()

	annotPath := b.cfg.BuildPath(b.cfg.Build.AnnotationsFile)
	annotFile, err := iofs.Open(annotPath)
	if err != nil {
		return err
	}
	defer annotFile.Close()

	in := otol.Input{Tree: treeFile, Annotations: annotFile}

	pickedPath := b.cfg.BuildPath(b.cfg.Build.PickedNamesFile)
	pickedFile, err := iofs.OpenOptional(pickedPath)
	if err != nil {
		return err
	}
	if pickedFile != nil {
		defer pickedFile.Close()
		in.PickedNames = pickedFile
	} else {
		slog.Warn("File with picked names not found", "path", pickedPath)
	}

	bar := b.startBar("Parsing tree: ", iofs.Size(treePath))
	if bar != nil {
		in.Progress = func(n int64) { bar.SetCurrent(n) }
	}
	slog.Info("Building full tree", "tree", treePath, "annotations", annotPath)
	tr, stats, err := otol.Build(in)
	if bar != nil {
		bar.SetCurrent(bar.Total())
		bar.Finish()
	}
	if err != nil {
		return BuildError(treePath, err)
	}
	if err = tr.Validate(); err != nil {
		return ValidateError(tree.Full, err)
	}

	if err = b.store.Write(ctx, tree.Full, tr); err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Full tree is built",
		"nodes", stats.Nodes,
		"renamed", stats.Renamed,
		"compounds", stats.Compounds,
		"supported", stats.Supported,
		"duration", dur,
	)
	gn.Info(
		"Built full tree with <em>%s</em> nodes (%s renamed, %s compound) in %s",
		humanize.Comma(int64(tr.Len())),
		humanize.Comma(int64(stats.Renamed)),
		humanize.Comma(int64(stats.Compounds)),
		dur,
	)
	return nil
}

func (b *Builder) startBar(prefix string, size int64) *pb.ProgressBar {
	if !b.Bar || size <= 0 {
		return nil
	}
	bar := pb.Full.Start64(size)
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
