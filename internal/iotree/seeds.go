package iotree

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gnames/gntol/pkg/schema"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/jackc/pgx/v5"
)

// DirectImages maps names of view nodes that own an image to their
// external ids.
func (s *Store) DirectImages(ctx context.Context, v tree.View) (map[string]string, error) {
	pool, err := s.pool()
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		SELECT n.name, n.id
		FROM %s n
			JOIN node_imgs ni ON ni.name = n.name`,
		schema.NodesTable(v),
	)
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return nil, SeedsError("node images", err)
	}

	res := make(map[string]string)
	var name, id string
	_, err = pgx.ForEachRow(rows, []any{&name, &id}, func() error {
		res[name] = id
		return nil
	})
	if err != nil {
		return nil, SeedsError("node images", err)
	}
	return res, nil
}

// ImageNames returns names of nodes that own an image.
func (s *Store) ImageNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, "node images", "SELECT name FROM node_imgs ORDER BY name")
}

// DescNames returns names of nodes that have a description.
func (s *Store) DescNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, "descriptions", `
		SELECT w.name
		FROM wiki_ids w
			JOIN descs d ON d.wiki_id = w.id
		ORDER BY w.name`,
	)
}

// LinkedNames returns names of view nodes that borrow an image.
func (s *Store) LinkedNames(ctx context.Context, v tree.View) ([]string, error) {
	q := fmt.Sprintf("SELECT name FROM %s ORDER BY name",
		schema.LinkedImagesTable(v))
	return s.names(ctx, "linked images", q)
}

// ViewNames returns names of all nodes stored for a view.
func (s *Store) ViewNames(ctx context.Context, v tree.View) ([]string, error) {
	q := fmt.Sprintf("SELECT name FROM %s ORDER BY name", schema.NodesTable(v))
	return s.names(ctx, v.String()+" nodes", q)
}

// ResolvePicked maps hand-picked names to full-tree node names. A name
// matches a node name first, then an alternative name. Names that match
// nothing are returned separately.
func (s *Store) ResolvePicked(
	ctx context.Context,
	picked []string,
) ([]string, []string, error) {
	pool, err := s.pool()
	if err != nil {
		return nil, nil, err
	}

	rows, err := pool.Query(ctx,
		"SELECT name FROM nodes WHERE name = ANY($1)", picked)
	if err != nil {
		return nil, nil, SeedsError("picked nodes", err)
	}
	exact, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, nil, SeedsError("picked nodes", err)
	}
	found := make(map[string]string, len(picked))
	for _, name := range exact {
		found[name] = name
	}

	var rest []string
	for _, name := range picked {
		if _, ok := found[name]; !ok {
			rest = append(rest, name)
		}
	}
	if len(rest) > 0 {
		rows, err = pool.Query(ctx, `
			SELECT DISTINCT ON (a.alt_name) a.alt_name, a.name
			FROM names a
				JOIN nodes n ON n.name = a.name
			WHERE a.alt_name = ANY($1)
			ORDER BY a.alt_name, a.pref_alt DESC, a.name`,
			rest,
		)
		if err != nil {
			return nil, nil, SeedsError("picked alt-names", err)
		}
		var alt, name string
		_, err = pgx.ForEachRow(rows, []any{&alt, &name}, func() error {
			found[alt] = name
			return nil
		})
		if err != nil {
			return nil, nil, SeedsError("picked alt-names", err)
		}
	}

	var res, unknown []string
	for _, name := range picked {
		if n, ok := found[name]; ok {
			res = append(res, n)
			continue
		}
		slog.Warn("Picked name not found", "name", name)
		unknown = append(unknown, name)
	}
	slices.Sort(res)
	return slices.Compact(res), unknown, nil
}

func (s *Store) names(ctx context.Context, what, q string) ([]string, error) {
	pool, err := s.pool()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return nil, SeedsError(what, err)
	}
	res, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, SeedsError(what, err)
	}
	return res, nil
}
