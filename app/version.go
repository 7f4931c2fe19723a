package app

import (
	"fmt"
	"io"
)

var (
	Version = "0.1.0"
	Dev     = ""
	Commit  = ""
)

// VersionString returns the version with channel and commit applied.
func VersionString() string {
	version := Version

	if Dev != "" {
		version += "-dev." + Commit
	}

	if Commit != "" && Dev == "" {
		version += " (" + Commit + ")"
	}

	return version
}

func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", Name(), VersionString())
}
