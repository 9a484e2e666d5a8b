package iobuild

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/errcode"
	"github.com/gnames/gntol/pkg/otol"
	"github.com/gnames/gntol/pkg/tree"
)

// BuildError creates an error for a malformed release.
func BuildError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	msg := "Cannot build tree from <em>%s</em>"
	vars := []any{path}
	var pe *otol.ParseError
	if errors.As(err, &pe) {
		msg = "Malformed tree file <em>%s</em> at byte <em>%d</em>: %s"
		vars = append(vars, pe.Pos, pe.Msg)
	}
	return &gn.Error{
		Code: errcode.BuildParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

// ValidateError creates an error for a tree with broken structure.
func ValidateError(v tree.View, err error) error {
	return &gn.Error{
		Code: errcode.BuildValidateError,
		Msg:  "The <em>%s</em> tree is inconsistent",
		Vars: []any{v},
		Err:  fmt.Errorf("validation of %s tree: %w", v, err),
	}
}

// FullReduceError creates an error for an attempt to reduce the full
// tree into itself.
func FullReduceError() error {
	return &gn.Error{
		Code: errcode.ReduceError,
		Msg:  "Full tree cannot be generated by reduction, use <em>build</em>",
		Err:  errors.New("full tree cannot be reduced"),
	}
}

// NoPickedError creates an error for a picked-nodes file that resolves
// to nothing.
func NoPickedError(path string) error {
	msg := `No picked names from <em>%s</em> are found in the tree

<em>How to fix:</em>
  1. Check that the file has one name per line
  2. Run <em>build</em> and <em>populate</em> before <em>reduce</em>`

	return &gn.Error{
		Code: errcode.TreeSeedsError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("no picked names found in %s", path),
	}
}

// ReduceError creates an error for a failed view generation.
func ReduceError(v tree.View, err error) error {
	return &gn.Error{
		Code: errcode.ReduceError,
		Msg:  "Cannot generate <em>%s</em> tree",
		Vars: []any{v},
		Err:  fmt.Errorf("reduce %s: %w", v, err),
	}
}

// LinkError creates an error for failed linking of images.
func LinkError(v tree.View, err error) error {
	return &gn.Error{
		Code: errcode.LinkError,
		Msg:  "Cannot link images of <em>%s</em> tree",
		Vars: []any{v},
		Err:  fmt.Errorf("link %s: %w", v, err),
	}
}
