package cli

import "github.com/matzehuels/figmajson/pkg/buildinfo"

// SetVersion overrides the build information shown by --version. Empty
// values keep the ldflags defaults. Call it before RootCommand.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}
