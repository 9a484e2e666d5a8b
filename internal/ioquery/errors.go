package ioquery

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/errcode"
	"github.com/gnames/gntol/pkg/tree"
)

// NotConnectedError creates an error for a query without database
// connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Query attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// OpenError creates an error for a failed start of a read-only
// transaction.
func OpenError(v tree.View, err error) error {
	return &gn.Error{
		Code: errcode.QueryOpenError,
		Msg:  "Cannot open <em>%s</em> tree for reading",
		Vars: []any{v},
		Err:  fmt.Errorf("cannot begin read-only tx for %s: %w", v, err),
	}
}

// ReadError creates an error for a failed lookup.
func ReadError(table string, err error) error {
	return &gn.Error{
		Code: errcode.QueryReadError,
		Msg:  "Cannot read data from <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("cannot query %s: %w", table, err),
	}
}

// CloseError creates an error for a failed end of a read-only
// transaction.
func CloseError(v tree.View, err error) error {
	return &gn.Error{
		Code: errcode.QueryReadError,
		Msg:  "Cannot close <em>%s</em> tree handle",
		Vars: []any{v},
		Err:  fmt.Errorf("cannot rollback read-only tx for %s: %w", v, err),
	}
}
