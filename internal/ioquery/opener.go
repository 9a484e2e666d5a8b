// Package ioquery implements read-only storage handles of the query
// engine on top of PostgreSQL.
package ioquery

import (
	"context"

	"github.com/gnames/gntol/pkg/db"
	"github.com/gnames/gntol/pkg/query"
	"github.com/gnames/gntol/pkg/schema"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/jackc/pgx/v5"
)

type opener struct {
	operator db.Operator
}

// New creates an Opener that takes connections from the operator pool.
func New(op db.Operator) query.Opener {
	return &opener{operator: op}
}

// Open starts a read-only transaction for one request.
func (o *opener) Open(ctx context.Context, view tree.View) (query.Reader, error) {
	pool := o.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, OpenError(view, err)
	}
	return &reader{
		tx:     tx,
		view:   view,
		nodes:  schema.NodesTable(view),
		edges:  schema.EdgesTable(view),
		linked: schema.LinkedImagesTable(view),
	}, nil
}
