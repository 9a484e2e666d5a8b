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
	"github.com/spf13/cobra"
)

// getLinkCmd returns the link command.
func getLinkCmd() *cobra.Command {
	var view string

	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Link images of nodes to images of their descendants",
		Long: `Link finds an image for every node without one of its own by
borrowing the image of its largest descendant with an image.
Compound nodes '[A + B]' get a pair of images of A and B.

Run it for the full tree before reduce, and for every reduced tree
after reduce.

Examples:
  gntol link --tree full
  gntol link -t images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLink(view)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	treeFlag(linkCmd, &view, "full",
		"tree to link: full, picked, images or trimmed")
	return linkCmd
}

func runLink(view string) error {
	v, err := parseView(view)
	if err != nil {
		return err
	}

	ctx := context.Background()
	op, err := connect(ctx, true)
	if err != nil {
		return err
	}
	defer op.Close()

	return iobuild.New(cfg, op).Link(ctx, v)
}
