package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/fc-archive/internal/dispatch"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Suggest one random article",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dispatch.RandomPick, nil)
	},
}

func init() {
	rootCmd.AddCommand(randomCmd)
}
