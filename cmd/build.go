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
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
func getBuildCmd() *cobra.Command {
	var dataDir string

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the full tree from an Open Tree of Life release",
		Long: `Build parses the release files and replaces the full tree.

Files are taken from the data directory (build.data_dir, or the cache
directory when it is empty):
  - labelled_supertree_ottnames.tre  Newick tree
  - annotations.json                 support annotations
  - picked_otol_names.txt            optional 'name|ottID' overrides

Anonymous nodes get names like '[A + B]' from their two largest
children, repeated names get ' [2]', ' [3]' suffixes.

Examples:
  gntol build
  gntol build --data-dir ~/otol`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("data-dir") {
				cfg.Update([]config.Option{config.OptBuildDataDir(dataDir)})
			}
			err := runBuild()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dataDirFlag(buildCmd, &dataDir)
	return buildCmd
}

func runBuild() error {
	ctx := context.Background()

	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	b := iobuild.New(cfg, op)
	b.Bar = true
	return b.Build(ctx)
}
