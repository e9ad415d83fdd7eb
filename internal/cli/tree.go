package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fjio "github.com/matzehuels/figmajson/pkg/io"
	"github.com/matzehuels/figmajson/pkg/render/treeviz"
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output string
		opts   treeviz.Options
	)

	cmd := &cobra.Command{
		Use:   "tree <document.json>",
		Short: "Draw the layer tree of a document",
		Long: `Draw the layer tree of a dumped document as a Graphviz graph.

The format follows the output extension: .svg and .png render with
Graphviz, any other extension (or stdout) gets DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fjio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			dot := treeviz.ToDOT(doc, opts)

			if output == "" {
				fmt.Print(dot)
				return nil
			}

			data := []byte(dot)
			var render func(context.Context, string) ([]byte, error)
			switch strings.ToLower(filepath.Ext(output)) {
			case ".svg":
				render = treeviz.RenderSVG
			case ".png":
				render = treeviz.RenderPNG
			}
			if render != nil {
				prog := newProgress(c.Logger)
				if data, err = render(cmd.Context(), dot); err != nil {
					return err
				}
				prog.done("Rendered layer tree")
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Drew %d layers", doc.NodeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg, .png or .dot; default DOT on stdout)")
	cmd.Flags().IntVar(&opts.MaxDepth, "depth", 0, "maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.ShowIDs, "ids", false, "show node ids")

	return cmd
}
