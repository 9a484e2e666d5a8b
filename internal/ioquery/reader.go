package ioquery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gntol/pkg/imgref"
	"github.com/gnames/gntol/pkg/query"
	"github.com/gnames/gntol/pkg/schema"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/jackc/pgx/v5"
)

// reader is bound to one read-only transaction.
type reader struct {
	tx     pgx.Tx
	view   tree.View
	nodes  string
	edges  string
	linked string
}

func (r *reader) Nodes(ctx context.Context, names []string) ([]query.NodeRecord, error) {
	q := fmt.Sprintf(
		"SELECT name, id, tips FROM %s WHERE name = ANY($1)", r.nodes,
	)
	rows, err := r.tx.Query(ctx, q, names)
	if err != nil {
		return nil, ReadError(r.nodes, err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowToStructByPos[query.NodeRecord])
	if err != nil {
		return nil, ReadError(r.nodes, err)
	}
	return res, nil
}

func (r *reader) ChildEdges(ctx context.Context, parents []string) ([]query.EdgeRecord, error) {
	return r.edgeRecords(ctx, "e.parent", parents)
}

func (r *reader) ParentEdges(ctx context.Context, children []string) ([]query.EdgeRecord, error) {
	return r.edgeRecords(ctx, "e.child", children)
}

func (r *reader) edgeRecords(
	ctx context.Context,
	col string,
	names []string,
) ([]query.EdgeRecord, error) {
	q := fmt.Sprintf(`
SELECT e.parent, e.child, e.p_support, n.tips
  FROM %s e
    JOIN %s n ON n.name = e.child
  WHERE %s = ANY($1)`, r.edges, r.nodes, col)
	rows, err := r.tx.Query(ctx, q, names)
	if err != nil {
		return nil, ReadError(r.edges, err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowToStructByPos[query.EdgeRecord])
	if err != nil {
		return nil, ReadError(r.edges, err)
	}
	return res, nil
}

func (r *reader) NodeImages(ctx context.Context, names []string) ([]string, error) {
	rows, err := r.tx.Query(ctx,
		"SELECT name FROM node_imgs WHERE name = ANY($1)", names)
	if err != nil {
		return nil, ReadError("node_imgs", err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, ReadError("node_imgs", err)
	}
	return res, nil
}

func (r *reader) LinkedImages(
	ctx context.Context,
	names []string,
) (map[string]imgref.ImageRef, error) {
	q := fmt.Sprintf(
		"SELECT name, otol_ids FROM %s WHERE name = ANY($1)", r.linked,
	)
	rows, err := r.tx.Query(ctx, q, names)
	if err != nil {
		return nil, ReadError(r.linked, err)
	}
	res := make(map[string]imgref.ImageRef)
	var name, ids string
	_, err = pgx.ForEachRow(rows, []any{&name, &ids}, func() error {
		if ref := imgref.Parse(ids); !ref.IsNone() {
			res[name] = ref
		}
		return nil
	})
	if err != nil {
		return nil, ReadError(r.linked, err)
	}
	return res, nil
}

func (r *reader) PreferredNames(
	ctx context.Context,
	names []string,
) (map[string]string, error) {
	q := `
SELECT DISTINCT ON (name) name, alt_name
  FROM names
  WHERE name = ANY($1) AND pref_alt
  ORDER BY name, alt_name`
	return r.stringMap(ctx, "names", q, names)
}

func (r *reader) IUCN(ctx context.Context, names []string) (map[string]string, error) {
	q := "SELECT name, iucn FROM node_iucn WHERE name = ANY($1)"
	return r.stringMap(ctx, "node_iucn", q, names)
}

func (r *reader) stringMap(
	ctx context.Context,
	table, q string,
	names []string,
) (map[string]string, error) {
	rows, err := r.tx.Query(ctx, q, names)
	if err != nil {
		return nil, ReadError(table, err)
	}
	res := make(map[string]string)
	var k, v string
	_, err = pgx.ForEachRow(rows, []any{&k, &v}, func() error {
		res[k] = v
		return nil
	})
	if err != nil {
		return nil, ReadError(table, err)
	}
	return res, nil
}

func (r *reader) SearchNames(ctx context.Context, s query.Search) ([]query.NameHit, error) {
	if s.Limit <= 0 {
		return nil, nil
	}
	q := fmt.Sprintf(`
SELECT n.name, coalesce(p.pop, 0)
  FROM %s n
    LEFT JOIN node_pop p ON p.name = n.name
  WHERE lower(n.name) LIKE $1 ESCAPE '\' AND n.name NOT LIKE '[%%'
  ORDER BY length(n.name), n.name
  LIMIT $2`, r.nodes)
	rows, err := r.tx.Query(ctx, q, likePattern(s), s.Limit)
	if err != nil {
		return nil, ReadError(r.nodes, err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowToStructByPos[query.NameHit])
	if err != nil {
		return nil, ReadError(r.nodes, err)
	}
	return res, nil
}

func (r *reader) SearchAltNames(
	ctx context.Context,
	s query.Search,
) ([]query.AltNameHit, error) {
	if s.Limit <= 0 {
		return nil, nil
	}
	q := fmt.Sprintf(`
SELECT alt_name, name, pref_alt, pop FROM (
  SELECT DISTINCT ON (a.name)
      a.alt_name, a.name, a.pref_alt, coalesce(p.pop, 0) AS pop
    FROM names a
      JOIN %s n ON n.name = a.name
      LEFT JOIN node_pop p ON p.name = a.name
    WHERE lower(a.alt_name) LIKE $1 ESCAPE '\'
    ORDER BY a.name, a.pref_alt DESC, length(a.alt_name), a.alt_name
  ) hits
  ORDER BY length(alt_name), alt_name, name
  LIMIT $2`, r.nodes)
	rows, err := r.tx.Query(ctx, q, likePattern(s), s.Limit)
	if err != nil {
		return nil, ReadError("names", err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowToStructByPos[query.AltNameHit])
	if err != nil {
		return nil, ReadError("names", err)
	}
	return res, nil
}

func (r *reader) Descriptions(
	ctx context.Context,
	names []string,
) (map[string]query.DescInfo, error) {
	q := `
SELECT w.name, d."desc", w.id, d.from_dbp
  FROM wiki_ids w
    JOIN descs d ON d.wiki_id = w.id
  WHERE w.name = ANY($1)`
	rows, err := r.tx.Query(ctx, q, names)
	if err != nil {
		return nil, ReadError("descs", err)
	}
	res := make(map[string]query.DescInfo)
	var name string
	var d query.DescInfo
	_, err = pgx.ForEachRow(rows,
		[]any{&name, &d.Text, &d.SourceID, &d.FromAlt},
		func() error {
			res[name] = d
			return nil
		},
	)
	if err != nil {
		return nil, ReadError("descs", err)
	}
	return res, nil
}

// Images looks up external ids in the full view, a linked image can
// come from a node the reduced view does not keep.
func (r *reader) Images(ctx context.Context, ids []string) (map[string]query.ImgInfo, error) {
	q := fmt.Sprintf(`
SELECT n.id, i.id, i.src, i.url, i.license, i.artist, i.credit
  FROM %s n
    JOIN node_imgs ni ON ni.name = n.name
    JOIN images i ON i.id = ni.img_id AND i.src = ni.src
  WHERE n.id = ANY($1)`, schema.NodesTable(tree.Full))
	rows, err := r.tx.Query(ctx, q, ids)
	if err != nil {
		return nil, ReadError("images", err)
	}
	res := make(map[string]query.ImgInfo)
	var extID string
	var img query.ImgInfo
	_, err = pgx.ForEachRow(rows,
		[]any{&extID, &img.ID, &img.Source, &img.URL,
			&img.License, &img.Artist, &img.Credit},
		func() error {
			res[extID] = img
			return nil
		},
	)
	if err != nil {
		return nil, ReadError("images", err)
	}
	return res, nil
}

// Close ends the read-only transaction and returns its connection to
// the pool.
func (r *reader) Close(ctx context.Context) error {
	err := r.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return CloseError(r.view, err)
	}
	return nil
}

// likePattern escapes LIKE wildcards of the search text.
func likePattern(s query.Search) string {
	text := strings.ToLower(s.Text)
	text = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
	if s.Prefix {
		return text + "%"
	}
	return "%" + text + "%"
}
