package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figmajson/pkg/dump"
	fjio "github.com/matzehuels/figmajson/pkg/io"
	"github.com/matzehuels/figmajson/pkg/policy"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// dumpOpts holds the command-line flags for the dump command.
type dumpOpts struct {
	output           string   // output file; stdout when empty
	nodes            []string // node ids to dump instead of the scene selection
	images           bool     // embed image bytes
	geometry         string   // "paths" or "none"
	styles           bool     // record style metadata
	includeInvisible bool     // keep hidden and fully transparent layers
	copy             bool     // also push the document to the clipboard
}

// dumpCommand creates the dump command.
func (c *CLI) dumpCommand() *cobra.Command {
	var opts dumpOpts

	cmd := &cobra.Command{
		Use:   "dump <scene.json>",
		Short: "Serialize the selection of a scene into a document",
		Long: `Serialize layers of a scene file into a portable JSON document.

Without --node the scene's saved selection is dumped, or every layer of the
current page when nothing is selected. Flags override the [dump] section of
the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("images") {
				cfg.Dump.Images = opts.images
			}
			if flags.Changed("geometry") {
				cfg.Dump.Geometry = policy.Geometry(opts.geometry)
			}
			if flags.Changed("styles") {
				cfg.Dump.Styles = opts.styles
			}
			if flags.Changed("include-invisible") {
				cfg.Dump.SkipInvisibleNodes = !opts.includeInvisible
			}

			doc, err := c.runDump(cmd.Context(), args[0], opts.nodes, cfg.Dump)
			if err != nil {
				return err
			}

			if opts.copy {
				clip, s, err := c.openClipboard(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer s.Close()
				entry, err := clip.Copy(cmd.Context(), doc)
				if err != nil {
					return err
				}
				c.Logger.Info("Copied to clipboard", "id", entry.ID)
			}

			if opts.output == "" {
				return fjio.WriteDocument(doc, os.Stdout)
			}
			if err := fjio.ExportDocument(doc, opts.output); err != nil {
				return err
			}
			printSuccess("Dumped %d layers", doc.NodeCount())
			printDocumentStats(doc)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVarP(&opts.nodes, "node", "n", nil, "node id to dump (repeatable)")
	cmd.Flags().BoolVar(&opts.images, "images", false, "embed image bytes")
	cmd.Flags().StringVar(&opts.geometry, "geometry", string(policy.GeometryNone), "path geometry: none, paths")
	cmd.Flags().BoolVar(&opts.styles, "styles", false, "record style metadata")
	cmd.Flags().BoolVar(&opts.includeInvisible, "include-invisible", false, "keep hidden and transparent layers")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "also copy the document to the clipboard")

	return cmd
}

// runDump loads a scene and dumps either the given nodes or its selection.
func (c *CLI) runDump(ctx context.Context, scenePath string, ids []string, opts dump.Options) (*scene.Document, error) {
	prog := newProgress(c.Logger)

	d, err := fjio.LoadScene(scenePath)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		if err := d.Select(ids...); err != nil {
			return nil, err
		}
	}

	doc, err := dump.Dump(ctx, d, d.Selection(), opts)
	if err != nil {
		return nil, fmt.Errorf("dump %s: %w", scenePath, err)
	}
	prog.done(fmt.Sprintf("Dumped %d layers from %s", doc.NodeCount(), scenePath))
	return doc, nil
}
