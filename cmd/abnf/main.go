package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "abnf",
		Short: "Incremental parsing tools built on ABNF rule combinators",
	}

	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newFollowCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
