package query

import (
	"context"

	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/tree"
)

// Opener creates read-only handles to stored tree views.
type Opener interface {
	// Open returns a Reader for the tables of a view. The Reader
	// must be closed when a request is done.
	Open(ctx context.Context, view tree.View) (Reader, error)
}

// Reader provides batch lookups against one tree view and the shared
// auxiliary data. Lookups of unknown names return no rows and no error.
type Reader interface {
	// Nodes returns stored nodes with the given names.
	Nodes(ctx context.Context, names []string) ([]NodeRecord, error)

	// ChildEdges returns edges from the given parents together with
	// tips of the children.
	ChildEdges(ctx context.Context, parents []string) ([]EdgeRecord, error)

	// ParentEdges returns edges leading to the given children.
	ParentEdges(ctx context.Context, children []string) ([]EdgeRecord, error)

	// NodeImages returns names that have an image of their own.
	NodeImages(ctx context.Context, names []string) ([]string, error)

	// LinkedImages returns images borrowed from descendants.
	LinkedImages(ctx context.Context, names []string) (map[string]imgref.ImageRef, error)

	// PreferredNames returns preferred alternative names.
	PreferredNames(ctx context.Context, names []string) (map[string]string, error)

	// IUCN returns conservation statuses.
	IUCN(ctx context.Context, names []string) (map[string]string, error)

	// SearchNames finds node names, compound names excluded. Results
	// are case-insensitive matches ordered by length, then by name.
	SearchNames(ctx context.Context, s Search) ([]NameHit, error)

	// SearchAltNames finds alternative names of nodes of the view, one
	// per node: the preferred matching name, otherwise the shortest one.
	// Results are ordered by length of the alternative name, then by
	// the alternative name. Limit counts nodes.
	SearchAltNames(ctx context.Context, s Search) ([]AltNameHit, error)

	// Descriptions returns description data for node names.
	Descriptions(ctx context.Context, names []string) (map[string]DescInfo, error)

	// Images returns metadata of images that belong to nodes with the
	// given external ids. Keys are external ids.
	Images(ctx context.Context, ids []string) (map[string]ImgInfo, error)

	// Close releases the handle.
	Close(ctx context.Context) error
}

// NodeRecord is a stored node.
type NodeRecord struct {
	Name string
	ID   string
	Tips int
}

// EdgeRecord is a stored edge.
type EdgeRecord struct {
	Parent    string
	Child     string
	Support   bool
	ChildTips int
}

// Search describes a name search.
type Search struct {
	// Text is matched case-insensitively.
	Text string

	// Prefix makes Text match only the start of a name, otherwise
	// it matches anywhere.
	Prefix bool

	// Limit is the maximum number of returned rows.
	Limit int
}

// NameHit is a found node name.
type NameHit struct {
	Name string
	Pop  int
}

// AltNameHit is a found alternative name.
type AltNameHit struct {
	AltName   string
	Name      string
	Preferred bool
	Pop       int
}
