package cli

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Version is set at build time via -ldflags; when unset, the module build
// info supplies a best-effort value.
var Version = ""

// runVersion builds the handler for the version command.
func runVersion(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fmt.Fprintf(stdout, "waver %s\n", resolveVersion())
		return ExitOK
	}
}

func resolveVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
