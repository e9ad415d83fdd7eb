package insert

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/resolve"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// Offset shifts inserted root nodes.
type Offset struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Options configures an insert.
type Options struct {
	// Target is the parent of the inserted roots. Nil means the host's
	// current page.
	Target host.Node `json:"-" toml:"-"`

	Offset        Offset           `json:"offset" toml:"offset"`
	NameSuffix    string           `json:"nameSuffix" toml:"name_suffix"`
	FallbackFonts []scene.FontName `json:"fallbackFonts" toml:"fallback_fonts"`

	// Runtime (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the options used when a caller specifies none.
func DefaultOptions() Options {
	return Options{
		NameSuffix:    " Copy",
		FallbackFonts: append([]scene.FontName(nil), resolve.FallbackFonts...),
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

func (o Options) fallbacks() []scene.FontName {
	if len(o.FallbackFonts) > 0 {
		return o.FallbackFonts
	}
	return resolve.FallbackFonts
}
