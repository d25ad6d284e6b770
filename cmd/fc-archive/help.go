package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/fc-archive/internal/dispatch"
)

// helpCmd replaces cobra's default help command with the tutorial.
var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show a short usage tutorial",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := dispatch.New(nil, cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), false), "")
		return d.Dispatch(cmd.Context(), dispatch.Command{Kind: dispatch.Help})
	},
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
}
