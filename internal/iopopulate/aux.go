package iopopulate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gnames/gnlib"
)

// auxTable describes how a collaborator table is copied. Source and
// target tables have the same name.
type auxTable struct {
	name    string
	columns []string
	scan    func(*sql.Rows) ([]any, error)
}

// auxTables lists tables in the order of their dependencies.
var auxTables = []auxTable{
	{
		name:    "names",
		columns: []string{"name", "alt_name", "pref_alt", "src"},
		scan: func(r *sql.Rows) ([]any, error) {
			var name, alt, src sql.NullString
			var pref sql.NullInt64
			if err := r.Scan(&name, &alt, &pref, &src); err != nil {
				return nil, err
			}
			return []any{
				name.String, gnlib.FixUtf8(alt.String), pref.Int64 != 0, src.String,
			}, nil
		},
	},
	{
		name:    "wiki_ids",
		columns: []string{"name", "id"},
		scan: func(r *sql.Rows) ([]any, error) {
			var name sql.NullString
			var id sql.NullInt64
			if err := r.Scan(&name, &id); err != nil {
				return nil, err
			}
			return []any{name.String, id.Int64}, nil
		},
	},
	{
		name:    "descs",
		columns: []string{"wiki_id", "desc", "from_dbp"},
		scan: func(r *sql.Rows) ([]any, error) {
			var id, fromDBP sql.NullInt64
			var desc sql.NullString
			if err := r.Scan(&id, &desc, &fromDBP); err != nil {
				return nil, err
			}
			return []any{id.Int64, gnlib.FixUtf8(desc.String), fromDBP.Int64 != 0}, nil
		},
	},
	{
		name:    "node_imgs",
		columns: []string{"name", "img_id", "src"},
		scan: func(r *sql.Rows) ([]any, error) {
			var name, src sql.NullString
			var id sql.NullInt64
			if err := r.Scan(&name, &id, &src); err != nil {
				return nil, err
			}
			return []any{name.String, id.Int64, src.String}, nil
		},
	},
	{
		name:    "images",
		columns: []string{"id", "src", "url", "license", "artist", "credit"},
		scan: func(r *sql.Rows) ([]any, error) {
			var id sql.NullInt64
			var src, url, license, artist, credit sql.NullString
			err := r.Scan(&id, &src, &url, &license, &artist, &credit)
			if err != nil {
				return nil, err
			}
			return []any{
				id.Int64, src.String, url.String, license.String,
				gnlib.FixUtf8(artist.String), gnlib.FixUtf8(credit.String),
			}, nil
		},
	},
	{
		name:    "node_iucn",
		columns: []string{"name", "iucn"},
		scan: func(r *sql.Rows) ([]any, error) {
			var name, iucn sql.NullString
			if err := r.Scan(&name, &iucn); err != nil {
				return nil, err
			}
			return []any{name.String, iucn.String}, nil
		},
	},
	{
		name:    "node_pop",
		columns: []string{"name", "pop"},
		scan: func(r *sql.Rows) ([]any, error) {
			var name sql.NullString
			var pop sql.NullInt64
			if err := r.Scan(&name, &pop); err != nil {
				return nil, err
			}
			return []any{name.String, pop.Int64}, nil
		},
	},
}

// query selects columns of a source table.
func (t auxTable) query() string {
	cols := ""
	for i, c := range t.columns {
		if i > 0 {
			cols += ", "
		}
		cols += fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", cols, t.name)
}

// hasTable checks if the SQLite database contains a table.
func hasTable(ctx context.Context, lite *sql.DB, name string) (bool, error) {
	var n int
	err := lite.QueryRowContext(ctx,
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name,
	).Scan(&n)
	return n > 0, err
}

// readTable reads rows of a source table and sends them to emit in
// batches of batchSize rows.
func readTable(
	ctx context.Context,
	lite *sql.DB,
	t auxTable,
	batchSize int,
	emit func([][]any) error,
) (int, error) {
	rows, err := lite.QueryContext(ctx, t.query())
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int
	batch := make([][]any, 0, batchSize)
	for rows.Next() {
		row, err := t.scan(rows)
		if err != nil {
			return count, err
		}
		batch = append(batch, row)
		if len(batch) < batchSize {
			continue
		}
		if err = emit(batch); err != nil {
			return count, err
		}
		count += len(batch)
		batch = make([][]any, 0, batchSize)

		select {
		case <-ctx.Done():
			return count, ctx.Err()
		default:
		}
	}
	if err = rows.Err(); err != nil {
		return count, err
	}
	if len(batch) > 0 {
		if err = emit(batch); err != nil {
			return count, err
		}
		count += len(batch)
	}
	return count, nil
}
