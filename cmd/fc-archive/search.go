// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fc-archive/internal/dispatch"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search page text or recipe articles",
	Long: `Search runs a case-insensitive substring match against either the full
page text of every issue (text) or the headline, subhead and abstract of
recipe articles (articles). Only the first word of the term is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown search target %q: use text or articles", args[0])
		}
		return cmd.Help()
	},
}

var searchTextCmd = &cobra.Command{
	Use:   "text <term>",
	Short: "Find pages whose text contains the term",
	Long: `Text lists every page containing the term, ordered by issue, with the
match shown between asterisks and up to 40 characters of context.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dispatch.TextSearch, args)
	},
}

var searchArticlesCmd = &cobra.Command{
	Use:     "articles <term>",
	Aliases: []string{"recipes", "a"},
	Short:   "Find recipe articles by headline, subhead or abstract",
	Long: `Articles lists articles in the recipe categories (Basics, World Cuisines,
Quick & Delicious, Recipe, Repertoire) whose headline, subhead or abstract
contains the term, ordered by issue PDF.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, dispatch.ArticleSearch, args)
	},
}

func init() {
	searchCmd.AddCommand(searchTextCmd)
	searchCmd.AddCommand(searchArticlesCmd)

	rootCmd.AddCommand(searchCmd)
}
