package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figmajson/pkg/config"
	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/insert"
	fjio "github.com/matzehuels/figmajson/pkg/io"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// insertOpts holds the flags shared by insert and paste.
type insertOpts struct {
	into      string  // scene file to insert into
	output    string  // scene file to write; defaults to into
	page      string  // page to insert on; defaults to the current page
	target    string  // id of the parent node; defaults to the page
	offsetX   float64 // horizontal offset of every root
	offsetY   float64 // vertical offset of every root
	suffix    string  // appended to root names
	noHistory bool    // skip recording the document in the clipboard
}

func (o *insertOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.into, "into", "", "scene file to insert into (created if missing)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "scene file to write (default --into)")
	cmd.Flags().StringVar(&o.page, "page", "", "page name (default current page)")
	cmd.Flags().StringVar(&o.target, "target", "", "parent node id (default the page)")
	cmd.Flags().Float64Var(&o.offsetX, "offset-x", 0, "horizontal offset of inserted roots")
	cmd.Flags().Float64Var(&o.offsetY, "offset-y", 0, "vertical offset of inserted roots")
	cmd.Flags().StringVar(&o.suffix, "suffix", "", "suffix appended to root names")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "do not record the document in the clipboard")
	_ = cmd.MarkFlagRequired("into")
}

// apply overrides the [insert] config section with the flags that were set.
func (o *insertOpts) apply(cmd *cobra.Command, opts *insert.Options) {
	flags := cmd.Flags()
	if flags.Changed("offset-x") {
		opts.Offset.X = o.offsetX
	}
	if flags.Changed("offset-y") {
		opts.Offset.Y = o.offsetY
	}
	if flags.Changed("suffix") {
		opts.NameSuffix = o.suffix
	}
}

// insertCommand creates the insert command.
func (c *CLI) insertCommand() *cobra.Command {
	var opts insertOpts

	cmd := &cobra.Command{
		Use:   "insert <document.json>",
		Short: "Recreate a document inside a scene",
		Long: `Recreate the layers of a dumped document inside a scene file.

Fonts the scene cannot load are replaced by the configured fallbacks,
components and styles are resolved by id and then by library key, and
embedded images are re-created. Layers that cannot be recreated are
reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fjio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg.Insert)
			return c.runInsert(cmd.Context(), cfg, doc, &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// pasteCommand creates the paste command.
func (c *CLI) pasteCommand() *cobra.Command {
	var (
		opts insertOpts
		id   string
	)

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Insert the newest clipboard entry into a scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg.Insert)

			clip, s, err := c.openClipboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			var data []byte
			if id != "" {
				data, err = clip.Get(cmd.Context(), id)
			} else {
				_, data, err = clip.Latest(cmd.Context())
			}
			if errors.Is(err, errors.ErrCodeNotFound) {
				printWarning("Clipboard is empty")
				printNextStep("Copy layers with", appName+" dump <scene.json> --copy")
				return nil
			}
			if err != nil {
				return err
			}
			doc, err := fjio.DecodeDocument(data)
			if err != nil {
				return err
			}

			// A paste is already in the history.
			opts.noHistory = true
			return c.runInsert(cmd.Context(), cfg, doc, &opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "clipboard entry id (default newest)")
	return cmd
}

// runInsert inserts doc into the scene named by opts and saves it.
func (c *CLI) runInsert(ctx context.Context, cfg config.Config, doc *scene.Document, opts *insertOpts) error {
	prog := newProgress(c.Logger)

	d, err := fjio.LoadScene(opts.into)
	if err != nil {
		return err
	}
	if opts.page != "" {
		if err := d.SetCurrentPage(opts.page); err != nil {
			return err
		}
	}
	if opts.target != "" {
		target, ok := d.NodeByID(opts.target)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "target node not found: %s", opts.target)
		}
		cfg.Insert.Target = target
	}

	res, err := insert.Insert(ctx, d, doc, cfg.Insert)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Inserted %d layers", len(res.Nodes)))

	ids := make([]string, len(res.Nodes))
	for i, n := range res.Nodes {
		ids[i] = n.ID()
	}
	if err := d.Select(ids...); err != nil {
		c.Logger.Warn("couldn't select inserted layers", "err", err)
	}

	out := opts.output
	if out == "" {
		out = opts.into
	}
	if err := fjio.SaveScene(d, out); err != nil {
		return err
	}

	if !opts.noHistory {
		c.recordHistory(ctx, cfg, doc)
	}

	printSuccess("Inserted %d layers", len(res.Nodes))
	printInsertResult(res)
	printFile(out)
	return nil
}

// recordHistory copies doc to the clipboard. Failures only warn.
func (c *CLI) recordHistory(ctx context.Context, cfg config.Config, doc *scene.Document) {
	clip, s, err := c.openClipboard(ctx, cfg)
	if err != nil {
		c.Logger.Warn("clipboard unavailable", "err", err)
		return
	}
	defer s.Close()
	if _, err := clip.Copy(ctx, doc); err != nil {
		c.Logger.Warn("couldn't record clipboard entry", "err", err)
	}
}
