package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figmajson/pkg/buildinfo"
	"github.com/matzehuels/figmajson/pkg/config"
	"github.com/matzehuels/figmajson/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the default config file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "figmajson copies design layers to and from JSON",
		Long:         `figmajson serializes scene-graph layers into portable JSON documents and recreates them, resolving fonts, components, styles and images against the target scene.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/figmajson/config.toml)")

	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.insertCommand())
	root.AddCommand(c.pasteCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.defaultsCommand())
	root.AddCommand(c.clipboardCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store
// =============================================================================

// loadConfig reads the config file and attaches the CLI logger.
func (c *CLI) loadConfig() (config.Config, error) {
	path, err := c.resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "path", path, "backend", cfg.Store.Backend)

	cfg.Dump.Logger = c.Logger
	cfg.Insert.Logger = c.Logger
	return cfg, nil
}

// openClipboard opens the configured store and wraps it in a clipboard.
// The caller closes the returned store.
func (c *CLI) openClipboard(ctx context.Context, cfg config.Config) (*store.Clipboard, store.Store, error) {
	sc := cfg.Store
	if sc.Dir == "" {
		dir, err := clipboardDir()
		if err != nil {
			return nil, nil, err
		}
		sc.Dir = dir
	}
	s, err := store.Open(ctx, sc)
	if err != nil {
		return nil, nil, err
	}
	return store.NewClipboard(s, sc.TTL, cfg.Clipboard.Size), s, nil
}

// =============================================================================
// Paths
// =============================================================================

// clipboardDir returns the file store directory (~/.cache/figmajson/clipboard).
func clipboardDir() (string, error) {
	dir, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clipboard"), nil
}
