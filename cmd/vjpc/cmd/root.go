// Package cmd wires the vjpc subcommands onto a Cobra root command, in
// the teacher's cmd/<binary>/cmd layout.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vjassplus/vjpc/internal/errors"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "vjpc",
	Short: "Compiler for the indentation-based vJass+ source dialect",
	Long: `vjpc translates the indentation-based source dialect into the
legacy free-form target dialect understood by the host engine.

The source dialect adds conditional imports, indentation-based block
structure, anonymous scopes, multi-initializer blocks, local variable
hoisting, omittable statement keywords, simplified function declarations,
and type aliasing on top of the target dialect's grammar.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Debug reports whether --debug was passed, for callers (main's error
// printer) that need to render diagnostics with stack traces included.
func Debug() bool { return debug }

// ExitCode maps err to the process exit code required by the CLI
// contract: 0 success (never reached here — Execute only returns non-nil
// on failure), 1 user error, 2 internal error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ke, ok := err.(interface{ Kind() errors.Kind }); ok && ke.Kind() == errors.InternalError {
		return 2
	}
	return 1
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "include stack traces on internal errors")
}
