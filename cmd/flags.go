package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/internal/iodb"
	"github.com/gnames/gntol/pkg/db"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/spf13/cobra"
)

// treeFlag adds --tree flag with a default view name.
func treeFlag(cmd *cobra.Command, val *string, def, usage string) {
	cmd.Flags().StringVarP(val, "tree", "t", def, usage)
}

// parseView converts --tree value to a view.
func parseView(s string) (tree.View, error) {
	v, ok := tree.NewView(s)
	if !ok {
		return v, unknownViewError(s)
	}
	return v, nil
}

// connect opens a database connection, verbose mode reports the
// connection to the user.
func connect(ctx context.Context, verbose bool) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	if verbose {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return op, nil
}

// requireSchema checks that create was run before.
func requireSchema(ctx context.Context, op db.Operator) error {
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(cfg.Database.Database)
	}
	return nil
}

// dataDirFlag adds --data-dir flag that overrides build.data_dir.
func dataDirFlag(cmd *cobra.Command, val *string) {
	cmd.Flags().StringVarP(val, "data-dir", "d", "",
		"directory with input files (default: build.data_dir)")
}
