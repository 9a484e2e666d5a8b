// Package lifecycle defines batch phases that prepare the database
// for queries. Phases run in this order: schema creation, full tree
// build, auxiliary import, image linking of the full view, reduction,
// image linking of reduced views.
package lifecycle

import (
	"context"

	"github.com/gnames/gntol/pkg/tree"
)

// Builder parses a tree release and stores the full view.
type Builder interface {
	Build(ctx context.Context) error
}

// Populator imports auxiliary tables made by ingestion collaborators.
type Populator interface {
	Populate(ctx context.Context) error
}

// Linker computes linked images of a view.
type Linker interface {
	Link(ctx context.Context, view tree.View) error
}

// Reducer derives reduced views from the stored full view.
type Reducer interface {
	Reduce(ctx context.Context, views ...tree.View) error
}
