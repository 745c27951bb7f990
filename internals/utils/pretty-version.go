package utils

import (
	"github.com/jwalton/gchalk"
)

// PrettyVersion returns a pretty colored "version branch/module" string for terminal printing
func PrettyVersion(version string, branch string, module string) string {
	// we trim first to avoid broken colors
	if len(version) >= 22 {
		version = version[:18] + " …"
	}

	pretty := gchalk.Bold(version)
	if branch != "" || module != "" {
		pretty += " " + gchalk.Gray(branch+"/"+module)
	}
	return pretty
}
