package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figmajson/pkg/bridge"
	"github.com/matzehuels/figmajson/pkg/errors"
	fjio "github.com/matzehuels/figmajson/pkg/io"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, scenePath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer UI messages over HTTP",
		Long: `Serve the message bridge for a scene file.

POST /messages accepts ready, insert and logDefaults messages and answers
with the host's replies. Every insert is saved back to the scene file and
recorded in the clipboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("scene") {
				cfg.Server.Scene = scenePath
			}
			if cfg.Server.Scene == "" {
				return errors.New(errors.ErrCodeInvalidInput, "no scene file: pass --scene or set [server] scene")
			}

			d, err := fjio.LoadScene(cfg.Server.Scene)
			if err != nil {
				return err
			}
			clip, s, err := c.openClipboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			dispatcher := bridge.NewDispatcher(d, bridge.Options{
				Dump:      cfg.Dump,
				Insert:    cfg.Insert,
				Clipboard: clip,
				Persist: func(context.Context) error {
					return fjio.SaveScene(d, cfg.Server.Scene)
				},
				Logger: c.Logger,
			})

			printInfo("Serving %s", cfg.Server.Scene)
			printDetail("http://%s/messages", cfg.Server.Addr)
			return bridge.Serve(cmd.Context(), cfg.Server.Addr, dispatcher)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	cmd.Flags().StringVar(&scenePath, "scene", "", "scene file to edit (created on first insert)")

	return cmd
}
