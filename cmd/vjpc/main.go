// Command vjpc compiles the indentation-based source dialect into the
// target engine's legacy scripting dialect.
package main

import (
	"fmt"
	"os"

	"github.com/vjassplus/vjpc/cmd/vjpc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErr(err))
		os.Exit(cmd.ExitCode(err))
	}
}

// formatErr prefers a debug-aware Format(bool) string over the plain
// error interface so --debug can surface an InternalError's captured
// stack trace; errors without that method (e.g. plain cobra usage
// errors) fall back to their default string.
func formatErr(err error) string {
	if f, ok := err.(interface{ Format(bool) string }); ok {
		return f.Format(cmd.Debug())
	}
	return err.Error()
}
