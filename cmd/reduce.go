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

	"github.com/gnames/gn"
	"github.com/gnames/gntol/internal/iobuild"
	"github.com/gnames/gntol/pkg/config"
	"github.com/gnames/gntol/pkg/tree"
	"github.com/spf13/cobra"
)

// getReduceCmd returns the reduce command.
func getReduceCmd() *cobra.Command {
	var (
		views   []string
		dataDir string
	)

	reduceCmd := &cobra.Command{
		Use:   "reduce",
		Short: "Generate reduced trees from the full tree",
		Long: `Reduce generates smaller trees from the full one:
  - picked   hand-picked nodes (picked_nodes.txt) with a few children
  - images   nodes with images
  - trimmed  nodes with images or descriptions

Run populate and 'link --tree full' first. Linked images of generated
trees are removed, run link for each of them afterwards.

Examples:
  gntol reduce
  gntol reduce --tree picked --tree images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("data-dir") {
				cfg.Update([]config.Option{config.OptBuildDataDir(dataDir)})
			}
			err := runReduce(views)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reduceCmd.Flags().StringSliceVarP(&views, "tree", "t", nil,
		"trees to generate (default: picked, images, trimmed)")
	dataDirFlag(reduceCmd, &dataDir)
	return reduceCmd
}

func runReduce(names []string) error {
	var views []tree.View
	for _, name := range names {
		v, err := parseView(name)
		if err != nil {
			return err
		}
		views = append(views, v)
	}

	ctx := context.Background()
	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	b := iobuild.New(cfg, op)
	b.Bar = true
	return b.Reduce(ctx, views...)
}
