package iotree

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/errcode"
	"github.com/gnames/gntol/pkg/tree"
)

// NotConnectedError is returned when the store has no connection.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Tree operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// WriteError is returned when a view cannot be stored.
func WriteError(v tree.View, table string, err error) error {
	msg := "Cannot store <em>%s</em> tree in table <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TreeWriteError,
		Msg:  msg,
		Vars: []any{v.String(), table},
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn.Name(), table, err),
	}
}

// LoadError is returned when a view cannot be loaded.
func LoadError(v tree.View, table string, err error) error {
	msg := "Cannot load <em>%s</em> tree from table <em>%s</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TreeLoadError,
		Msg:  msg,
		Vars: []any{v.String(), table},
		Err: fmt.Errorf("from %s: cannot load %s: %w",
			fn.Name(), table, err),
	}
}

// EmptyViewError is returned when a view has no nodes.
func EmptyViewError(v tree.View) error {
	msg := `The <em>%s</em> tree is empty

<em>How to fix:</em>
  Run <em>gntol build</em> for the full tree
  or <em>gntol reduce</em> for reduced trees`
	return &gn.Error{
		Code: errcode.TreeEmptyError,
		Msg:  msg,
		Vars: []any{v.String()},
		Err:  fmt.Errorf("view %s has no nodes", v),
	}
}

// SeedsError is returned when seed names cannot be read.
func SeedsError(what string, err error) error {
	return &gn.Error{
		Code: errcode.TreeSeedsError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{what},
		Err:  fmt.Errorf("cannot read %s: %w", what, err),
	}
}
