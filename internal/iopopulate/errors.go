package iopopulate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/errcode"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// AuxNotFoundError creates an error for a missing SQLite file.
func AuxNotFoundError(path string, err error) error {
	msg := `Auxiliary database not found

<em>Path:</em> %s

<em>How to fix:</em>
  1. Put the file produced by ingestion tools to the data directory
  2. Or set <em>build.aux_file</em> in config.yaml`

	return &gn.Error{
		Code: errcode.PopulateOpenAuxError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot find %s: %w", path, err),
	}
}

// OpenAuxError creates an error for a SQLite file that cannot be
// opened.
func OpenAuxError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateOpenAuxError,
		Msg:  "Cannot open auxiliary database <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// ReadAuxError creates an error for a failed read of a SQLite table.
func ReadAuxError(table string, err error) error {
	return &gn.Error{
		Code: errcode.PopulateReadAuxError,
		Msg:  "Cannot read table <em>%s</em> of auxiliary database",
		Vars: []any{table},
		Err:  fmt.Errorf("cannot read sqlite table %s: %w", table, err),
	}
}

// WriteError creates an error for a failed bulk insert.
func WriteError(table string, err error) error {
	return &gn.Error{
		Code: errcode.PopulateWriteError,
		Msg:  "Cannot import data into <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("cannot write %s: %w", table, err),
	}
}
