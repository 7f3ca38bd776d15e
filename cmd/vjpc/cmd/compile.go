package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vjassplus/vjpc/internal/compiler"
)

var (
	compileOut         string
	compileEmitTokens  bool
	compileEmitAST     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [entry.jp]",
	Short: "Compile a source-dialect entry file to the target dialect",
	Long: `Run the full pipeline — resolve, lex, parse, lower, emit — on entry.jp
and write the resulting target-dialect text next to it with a .j
extension.

If no entry path is given, vjpc looks for main.jp next to the vjpc
binary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&compileOut, "out", "", "output path (default: entry path with .j extension)")
	compileCmd.Flags().BoolVar(&compileEmitTokens, "emit-tokens", false, "also write a <out>.tokens debug dump")
	compileCmd.Flags().BoolVar(&compileEmitAST, "emit-ast", false, "also write a <out>.ast debug dump")
}

func runCompile(cmd *cobra.Command, args []string) error {
	entry, err := resolveEntryPath(args)
	if err != nil {
		return err
	}

	drv := compiler.New(tabWidthFromEnv())

	res, err := drv.Compile(context.Background(), entry)
	if err != nil {
		return err
	}

	out := compileOut
	if out == "" {
		out = withExtension(entry, ".j")
	}
	if err := os.WriteFile(out, []byte(res.Output), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", out, err)
	}

	if compileEmitTokens {
		if err := os.WriteFile(out+".tokens", []byte(compiler.DumpTokens(res)), 0644); err != nil {
			return fmt.Errorf("failed to write tokens dump: %w", err)
		}
	}
	if compileEmitAST {
		if err := os.WriteFile(out+".ast", []byte(compiler.DumpAST(res.Program)), 0644); err != nil {
			return fmt.Errorf("failed to write ast dump: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiled %s -> %s\n", entry, out)
	}
	return nil
}

// resolveEntryPath returns the explicit positional argument, or falls
// back to main.jp beside the running binary when none was given.
func resolveEntryPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("no entry path given and could not locate main.jp: %w", err)
	}
	fallback := filepath.Join(filepath.Dir(exe), "main.jp")
	if _, err := os.Stat(fallback); err != nil {
		return "", fmt.Errorf("no entry path given and %s not found", fallback)
	}
	return fallback, nil
}

func withExtension(path, ext string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))
	return trimmed + ext
}

// tabWidthFromEnv reads VJPC_TAB_WIDTH, returning 0 (the Driver's "use
// the default") if unset or unparsable.
func tabWidthFromEnv() int {
	v := os.Getenv("VJPC_TAB_WIDTH")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
