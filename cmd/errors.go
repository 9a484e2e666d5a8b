package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/errcode"
)

func unknownViewError(s string) error {
	return &gn.Error{
		Code: errcode.QueryInvalidError,
		Msg:  "Unknown tree <em>%s</em>, use full, picked, images or trimmed",
		Vars: []any{s},
		Err:  fmt.Errorf("unknown tree view '%s'", s),
	}
}
