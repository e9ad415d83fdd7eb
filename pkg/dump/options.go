package dump

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/policy"
)

// Options configures a dump.
type Options struct {
	// SkipInvisibleNodes drops invisible nodes and their subtrees.
	SkipInvisibleNodes bool `json:"skipInvisibleNodes" toml:"skip_invisible_nodes"`

	// Images fetches the bytes of every referenced image.
	Images bool `json:"images" toml:"images"`

	// Geometry is "none" or "paths".
	Geometry policy.Geometry `json:"geometry" toml:"geometry"`

	// Styles resolves style ids into the document's style table.
	Styles bool `json:"styles" toml:"styles"`

	// Runtime (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the options used when a caller specifies none.
// Decode partial options on top of this value so unspecified fields keep
// their defaults.
func DefaultOptions() Options {
	return Options{
		SkipInvisibleNodes: true,
		Images:             false,
		Geometry:           policy.GeometryNone,
		Styles:             false,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	g := o.Geometry
	if g == "" {
		g = policy.GeometryNone
	}
	return errors.ValidateGeometry(string(g))
}

func (o Options) readOptions() policy.ReadOptions {
	g := o.Geometry
	if g == "" {
		g = policy.GeometryNone
	}
	return policy.ReadOptions{Geometry: g, Styles: o.Styles}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
