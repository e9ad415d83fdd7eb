// Package config loads figmajson settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/figmajson/config.toml (or
// ~/.config/figmajson/config.toml). Every section is optional and every
// key not present keeps its default:
//
//	[dump]
//	skip_invisible_nodes = true
//	images = true
//	geometry = "paths"
//	styles = true
//
//	[insert]
//	name_suffix = " Copy"
//	fallback_fonts = [{family = "Inter", style = "Regular"}]
//
//	[insert.offset]
//	x = 40
//	y = 0
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/figmajson/pkg/dump"
	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/insert"
	"github.com/matzehuels/figmajson/pkg/store"
)

// AppName names the configuration and cache directories.
const AppName = "figmajson"

// Config is the full configuration.
type Config struct {
	Dump      dump.Options   `toml:"dump"`
	Insert    insert.Options `toml:"insert"`
	Store     store.Config   `toml:"store"`
	Server    Server         `toml:"server"`
	Clipboard Clipboard      `toml:"clipboard"`
}

// Server configures the bridge server.
type Server struct {
	Addr string `toml:"addr"`
	// Scene is the scene file the server edits.
	Scene string `toml:"scene"`
}

// Clipboard configures the copy history.
type Clipboard struct {
	Size int `toml:"size"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Dump:   dump.DefaultOptions(),
		Insert: insert.DefaultOptions(),
		Store: store.Config{
			Backend: store.BackendFile,
			TTL:     store.DefaultClipboardTTL,
		},
		Server:    Server{Addr: "localhost:8080"},
		Clipboard: Clipboard{Size: store.DefaultClipboardSize},
	}
}

// Read decodes a configuration on top of the defaults.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Load reads the file at path. A missing file yields [Default].
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Read(f)
}

// Write encodes cfg as TOML.
func Write(cfg Config, w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks the option values.
func (c Config) Validate() error {
	if err := c.Dump.Validate(); err != nil {
		return err
	}
	if c.Store.Backend != "" {
		if err := errors.ValidateBackend(c.Store.Backend); err != nil {
			return err
		}
	}
	if c.Clipboard.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "clipboard size must not be negative")
	}
	return nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory (~/.cache/figmajson/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
