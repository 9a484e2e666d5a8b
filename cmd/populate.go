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
	"github.com/gnames/gntol/internal/iopopulate"
	"github.com/gnames/gntol/pkg/config"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	var (
		dataDir string
		jobs    int
	)

	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate database with auxiliary data from SQLite",
		Long: `Import auxiliary data prepared by ingestion tools.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Opens the SQLite file (build.aux_file, default data.db)
  3. Replaces tables names, wiki_ids, descs, node_imgs, images,
     node_iucn and node_pop with the SQLite content
  4. Reports progress and statistics

Tables absent from the SQLite file are skipped.

Examples:
  gntol populate
  gntol populate --data-dir ~/otol -j 4`,
		Aliases: []string{"add"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("data-dir") {
				opts = append(opts, config.OptBuildDataDir(dataDir))
			}
			if cmd.Flags().Changed("jobs") {
				opts = append(opts, config.OptJobsNumber(jobs))
			}
			cfg.Update(opts)

			err := runPopulate()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dataDirFlag(populateCmd, &dataDir)
	populateCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of tables imported concurrently")
	return populateCmd
}

func runPopulate() error {
	ctx := context.Background()

	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	return iopopulate.New(cfg, op).Populate(ctx)
}
