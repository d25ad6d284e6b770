package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/fc-archive/internal/dispatch"
)

var prevalenceCmd = &cobra.Command{
	Use:   "prevalence <term>",
	Short: "Count pages mentioning a term in each issue",
	Long: `Prevalence reports, for every issue with at least one matching page, how
many of its pages contain the term. Issues with the most matches come
first; the order of issues with equal counts is unspecified.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dispatch.Prevalence, args)
	},
}

func init() {
	rootCmd.AddCommand(prevalenceCmd)
}
