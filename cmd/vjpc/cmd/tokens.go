package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vjassplus/vjpc/internal/compiler"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <entry.jp>",
	Short: "Dump the lexer's token stream for an entry file and its imports",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	drv := compiler.New(tabWidthFromEnv())
	res, err := drv.Tokenize(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(compiler.DumpTokens(res))
	return nil
}
