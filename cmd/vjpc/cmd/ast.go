package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vjassplus/vjpc/internal/compiler"
)

var astCmd = &cobra.Command{
	Use:   "ast <entry.jp>",
	Short: "Dump the parsed-and-lowered tree for an entry file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	drv := compiler.New(tabWidthFromEnv())
	res, err := drv.CompileNoEmit(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(compiler.DumpAST(res.Program))
	return nil
}
