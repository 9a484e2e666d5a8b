// Package iopopulate implements Populator interface for importing
// auxiliary data of ingestion collaborators into PostgreSQL.
// This is an impure I/O package that reads a SQLite database and
// performs bulk inserts.
package iopopulate

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntol/pkg/config"
	"github.com/gnames/gntol/pkg/db"
	"github.com/gnames/gntol/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// populator implements the Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) lifecycle.Populator {
	return &populator{cfg: cfg, operator: op}
}

// Populate replaces auxiliary tables with the content of the SQLite
// database. Tables are copied concurrently, each in its own
// transaction. Tables absent from the SQLite database are skipped.
func (p *populator) Populate(ctx context.Context) error {
	pool := p.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	path := p.cfg.BuildPath(p.cfg.Build.AuxFile)
	if _, err := os.Stat(path); err != nil {
		return AuxNotFoundError(path, err)
	}
	lite, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return OpenAuxError(path, err)
	}
	defer lite.Close()
	if err = lite.PingContext(ctx); err != nil {
		return OpenAuxError(path, err)
	}

	start := time.Now()
	slog.Info("Starting import of auxiliary data", "file", path)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.cfg.JobsNumber))
	for _, t := range auxTables {
		g.Go(func() error {
			return p.copyTable(ctx, lite, pool, t)
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Auxiliary data imported", "duration", dur)
	gn.Info("Auxiliary data imported in <em>%s</em>", dur)
	return nil
}

func (p *populator) copyTable(
	ctx context.Context,
	lite *sql.DB,
	pool *pgxpool.Pool,
	t auxTable,
) error {
	ok, err := hasTable(ctx, lite, t.name)
	if err != nil {
		return ReadAuxError(t.name, err)
	}
	if !ok {
		slog.Warn("Auxiliary table is missing, skipping", "table", t.name)
		gn.Warn("Table <em>%s</em> is not in auxiliary data, skipping", t.name)
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return WriteError(t.name, err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "TRUNCATE "+t.name); err != nil {
		return WriteError(t.name, err)
	}

	var writeErr error
	count, err := readTable(ctx, lite, t, p.cfg.Database.BatchSize,
		func(rows [][]any) error {
			_, writeErr = tx.CopyFrom(ctx,
				pgx.Identifier{t.name}, t.columns, pgx.CopyFromRows(rows))
			return writeErr
		},
	)
	if writeErr != nil {
		return WriteError(t.name, writeErr)
	}
	if err != nil {
		return ReadAuxError(t.name, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return WriteError(t.name, err)
	}

	slog.Info("Imported auxiliary table",
		"table", t.name, "rows", humanize.Comma(int64(count)))
	gn.Info("Imported %s rows into <em>%s</em>",
		humanize.Comma(int64(count)), t.name)
	return nil
}
