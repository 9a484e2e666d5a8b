/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntol/internal/ioquery"
	"github.com/gnames/gntol/pkg/query"
	"github.com/spf13/cobra"
)

// getQueryCmd returns the query command.
func getQueryCmd() *cobra.Command {
	var (
		params query.Params
		pretty bool
	)

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Query a tree by node name",
		Long: `Query answers a request about a tree and prints JSON.

Request types:
  node  a node with its children, or with --toroot the chain of
        ancestors up to the root (stops below --excl)
  sugg  search suggestions for a name prefix or substring
  info  a node with its description and image

An empty --name means the root. Invalid requests print null.

Examples:
  gntol query --name "homo sapiens"
  gntol query -n "homo sapiens" --toroot --excl "mammalia"
  gntol query --type sugg --name "hom" --limit 10
  gntol query --type info --name "homo sapiens" --tree trimmed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(cmd.OutOrStdout(), params, pretty)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := queryCmd.Flags()
	f.StringVarP(&params.Name, "name", "n", "", "node name or search text")
	f.StringVar(&params.Type, "type", "node", "request type: node, sugg or info")
	f.BoolVar(&params.ToRoot, "toroot", false, "return ancestors chain")
	f.StringVar(&params.Excl, "excl", "", "node whose ancestors are skipped")
	f.StringVarP(&params.Limit, "limit", "l", "", "number of suggestions")
	treeFlag(queryCmd, &params.Tree, "images", "tree: trimmed, images or picked")
	f.BoolVarP(&pretty, "pretty", "p", false, "pretty-print JSON")
	return queryCmd
}

func runQuery(w io.Writer, params query.Params, pretty bool) error {
	ctx := context.Background()
	op, err := connect(ctx, false)
	if err != nil {
		return err
	}
	defer op.Close()

	e := query.New(cfg.Query, ioquery.New(op))
	res, err := e.Handle(ctx, params)
	if err != nil {
		return err
	}
	return printResponse(w, res, pretty)
}

func printResponse(w io.Writer, res query.Response, pretty bool) error {
	enc := gnfmt.GNjson{Pretty: pretty}
	out, err := enc.Encode(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
