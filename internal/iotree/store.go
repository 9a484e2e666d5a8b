// Package iotree stores tree views in PostgreSQL and loads them back.
// Every write replaces the tables of a view inside one transaction, so
// a failed write leaves the previous content intact.
package iotree

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gntol/pkg/db"
	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/schema"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads and writes tree views.
type Store struct {
	operator db.Operator

	// Bar enables terminal progress bars for bulk writes.
	Bar bool
}

// New creates a Store on top of a connected operator.
func New(op db.Operator) *Store {
	return &Store{operator: op}
}

func (s *Store) pool() (*pgxpool.Pool, error) {
	pool := s.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	return pool, nil
}

// Write replaces nodes and edges of a view. Linked images of the view
// are removed because they depend on the tree shape.
func (s *Store) Write(ctx context.Context, v tree.View, tr *tree.Tree) error {
	pool, err := s.pool()
	if err != nil {
		return err
	}

	nodes, edges := schema.NodesTable(v), schema.EdgesTable(v)
	linked := schema.LinkedImagesTable(v)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return WriteError(v, nodes, err)
	}
	defer tx.Rollback(ctx)

	q := fmt.Sprintf("TRUNCATE %s, %s, %s", nodes, edges, linked)
	if _, err = tx.Exec(ctx, q); err != nil {
		return WriteError(v, nodes, err)
	}

	bar := s.startBar(fmt.Sprintf("Writing %s nodes: ", v), tr.Len())
	nodeRows := make([][]any, 0, tr.Len())
	for i := range tr.Nodes {
		n := &tr.Nodes[i]
		nodeRows = append(nodeRows, []any{n.Name, n.ID, n.Tips})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{nodes},
		[]string{"name", "id", "tips"},
		progressRows(nodeRows, bar),
	)
	finishBar(bar)
	if err != nil {
		return WriteError(v, nodes, err)
	}

	edgeList := tr.Edges()
	bar = s.startBar(fmt.Sprintf("Writing %s edges: ", v), len(edgeList))
	edgeRows := make([][]any, 0, len(edgeList))
	for _, e := range edgeList {
		edgeRows = append(edgeRows, []any{e.Parent, e.Child, e.Support})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{edges},
		[]string{"parent", "child", "p_support"},
		progressRows(edgeRows, bar),
	)
	finishBar(bar)
	if err != nil {
		return WriteError(v, edges, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return WriteError(v, nodes, err)
	}

	slog.Info("Stored tree view",
		"view", v.String(),
		"nodes", humanize.Comma(int64(tr.Len())),
		"edges", humanize.Comma(int64(len(edgeList))),
	)
	return nil
}

// Load reads a view. Children are ordered by descending tips, then
// by name. The root gets a supported placement.
func (s *Store) Load(ctx context.Context, v tree.View) (*tree.Tree, error) {
	pool, err := s.pool()
	if err != nil {
		return nil, err
	}
	nodes, edges := schema.NodesTable(v), schema.EdgesTable(v)

	res := tree.New()
	q := fmt.Sprintf("SELECT name, id, tips FROM %s ORDER BY name", nodes)
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return nil, LoadError(v, nodes, err)
	}
	var name, id string
	var tips int
	_, err = pgx.ForEachRow(rows, []any{&name, &id, &tips}, func() error {
		_, err := res.Add(name, id, tips, false)
		return err
	})
	if err != nil {
		return nil, LoadError(v, nodes, err)
	}
	if res.Len() == 0 {
		return nil, EmptyViewError(v)
	}

	q = fmt.Sprintf(
		"SELECT parent, child, p_support FROM %s ORDER BY parent, child",
		edges,
	)
	rows, err = pool.Query(ctx, q)
	if err != nil {
		return nil, LoadError(v, edges, err)
	}
	var parent, child string
	var support bool
	_, err = pgx.ForEachRow(rows, []any{&parent, &child, &support}, func() error {
		p, ok := res.Index(parent)
		if !ok {
			return fmt.Errorf("edge refers to unknown parent '%s'", parent)
		}
		c, ok := res.Index(child)
		if !ok {
			return fmt.Errorf("edge refers to unknown child '%s'", child)
		}
		res.Link(p, c)
		res.Nodes[c].Support = support
		return nil
	})
	if err != nil {
		return nil, LoadError(v, edges, err)
	}

	if err = res.FindRoot(); err != nil {
		return nil, LoadError(v, edges, err)
	}
	res.Nodes[res.Root].Support = true
	res.SortChildren()
	if err = res.Validate(); err != nil {
		return nil, LoadError(v, nodes, err)
	}

	slog.Info("Loaded tree view",
		"view", v.String(),
		"nodes", humanize.Comma(int64(res.Len())),
	)
	return res, nil
}

// WriteLinked replaces linked images of a view.
func (s *Store) WriteLinked(
	ctx context.Context,
	v tree.View,
	linked map[string]imgref.ImageRef,
) error {
	pool, err := s.pool()
	if err != nil {
		return err
	}
	tbl := schema.LinkedImagesTable(v)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return WriteError(v, tbl, err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "TRUNCATE "+tbl); err != nil {
		return WriteError(v, tbl, err)
	}

	rows := make([][]any, 0, len(linked))
	for name, ref := range linked {
		if ref.IsNone() {
			continue
		}
		rows = append(rows, []any{name, ref.String()})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{tbl},
		[]string{"name", "otol_ids"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return WriteError(v, tbl, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return WriteError(v, tbl, err)
	}

	slog.Info("Stored linked images",
		"view", v.String(),
		"count", humanize.Comma(int64(len(rows))),
	)
	return nil
}

func (s *Store) startBar(prefix string, total int) *pb.ProgressBar {
	if !s.Bar {
		return nil
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

func finishBar(bar *pb.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}

// progressRows feeds CopyFrom and advances the bar.
func progressRows(rows [][]any, bar *pb.ProgressBar) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
		if bar != nil {
			bar.Increment()
		}
		return rows[i], nil
	})
}
