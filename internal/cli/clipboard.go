package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/store"
)

// clipboardCommand creates the clipboard management command.
func (c *CLI) clipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard",
		Short: "Manage the copy history",
	}

	cmd.AddCommand(c.clipboardListCommand())
	cmd.AddCommand(c.clipboardShowCommand())
	cmd.AddCommand(c.clipboardClearCommand())
	cmd.AddCommand(c.clipboardPathCommand())

	return cmd
}

// clipboardListCommand creates the "clipboard list" subcommand.
func (c *CLI) clipboardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clipboard entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			clip, s, err := c.openClipboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := clip.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Clipboard is empty")
				return nil
			}
			for _, e := range entries {
				printEntry(e)
			}
			return nil
		},
	}
}

func printEntry(e store.Entry) {
	fmt.Println(StyleTitle.Render(e.ID))
	printKeyValue("created", e.CreatedAt.Local().Format(time.DateTime))
	printKeyValue("roots", fmt.Sprintf("%v", e.Roots))
	printKeyValue("nodes", fmt.Sprintf("%d", e.Nodes))
	if e.Images > 0 {
		printKeyValue("images", fmt.Sprintf("%d", e.Images))
	}
	printKeyValue("size", fmt.Sprintf("%d bytes", e.Size))
}

// clipboardShowCommand creates the "clipboard show" subcommand.
func (c *CLI) clipboardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a clipboard document (default newest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			clip, s, err := c.openClipboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			var data []byte
			if len(args) == 1 {
				data, err = clip.Get(cmd.Context(), args[0])
			} else {
				_, data, err = clip.Latest(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

// clipboardClearCommand creates the "clipboard clear" subcommand.
func (c *CLI) clipboardClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every clipboard entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			clip, s, err := c.openClipboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := clip.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := clip.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Cleared %d clipboard entries", len(entries))
			printDetail("Backend: %s", backendName(cfg.Store))
			return nil
		},
	}
}

// clipboardPathCommand creates the "clipboard path" subcommand.
func (c *CLI) clipboardPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if b := backendName(cfg.Store); b != store.BackendFile {
				return errors.New(errors.ErrCodeUnsupported, "clipboard uses the %s backend, not files", b)
			}
			dir := cfg.Store.Dir
			if dir == "" {
				if dir, err = clipboardDir(); err != nil {
					return fmt.Errorf("get clipboard dir: %w", err)
				}
			}
			fmt.Println(dir)
			return nil
		},
	}
}

func backendName(cfg store.Config) string {
	if cfg.Backend == "" {
		return store.BackendFile
	}
	return cfg.Backend
}
