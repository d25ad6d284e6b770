// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/fc-archive/pkg/types"
)

// catalogQuery is one fixed query template.
type catalogQuery struct {
	mode types.Mode
	stmt string
}

var (
	textSearchQuery = catalogQuery{
		mode: types.ModeTextSearch,
		stmt: `SELECT p.issue_id, p.page_number, i.month, i.year, i.pdf, p.page_text
			FROM pages p
			JOIN issues i ON i.id = p.issue_id
			WHERE p.page_text LIKE ? ESCAPE '\'
			ORDER BY p.issue_id`,
	}

	articleSearchQuery = catalogQuery{
		mode: types.ModeArticleSearch,
		stmt: `SELECT headline, subhead, abstract, pdf, pages, category_id
			FROM articles
			WHERE category_id IN (` + placeholders(len(types.RecipeCategories)) + `)
			AND (headline LIKE ? ESCAPE '\' OR subhead LIKE ? ESCAPE '\' OR abstract LIKE ? ESCAPE '\')
			ORDER BY pdf`,
	}

	// Ties on the count come back in whatever order SQLite groups them.
	prevalenceQuery = catalogQuery{
		mode: types.ModePrevalence,
		stmt: `SELECT p.issue_id, i.pdf, i.month, i.year, COUNT(*) AS matches
			FROM pages p
			JOIN issues i ON i.id = p.issue_id
			WHERE p.page_text LIKE ? ESCAPE '\'
			GROUP BY p.issue_id
			ORDER BY matches DESC`,
	}

	randomPickQuery = catalogQuery{
		mode: types.ModeRandomPick,
		stmt: `SELECT headline, pdf, pages, category_id
			FROM articles
			ORDER BY RANDOM()
			LIMIT 1`,
	}
)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// likeEscaper escapes LIKE wildcards so the term only ever matches as a
// literal substring. Every LIKE in the catalog declares ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// fuzzy wraps term for a LIKE substring match. SQLite's LIKE is
// case-insensitive for ASCII.
func fuzzy(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// Execute runs the catalog entry for mode. term is ignored by
// ModeRandomPick. An empty result is returned as an empty ResultSet.
func (s *Store) Execute(ctx context.Context, mode types.Mode, term string) (types.ResultSet, error) {
	rs := types.ResultSet{Mode: mode}
	var err error

	switch mode {
	case types.ModeTextSearch:
		rs.Pages, err = s.TextSearch(ctx, term)
	case types.ModeArticleSearch:
		rs.Articles, err = s.ArticleSearch(ctx, term)
	case types.ModePrevalence:
		rs.Counts, err = s.Prevalence(ctx, term)
	case types.ModeRandomPick:
		var a types.ArticleRecord
		var found bool
		a, found, err = s.RandomPick(ctx)
		if found {
			rs.Articles = []types.ArticleRecord{a}
		}
	default:
		return rs, &QueryExecutionError{Mode: mode, Err: fmt.Errorf("unknown mode %q", mode)}
	}

	return rs, err
}

// TextSearch returns every page whose text contains term, joined with its
// issue metadata, ordered by issue id.
func (s *Store) TextSearch(ctx context.Context, term string) ([]types.PageRecord, error) {
	var pages []types.PageRecord
	err := s.query(ctx, textSearchQuery, []any{fuzzy(term)}, func(rows *sql.Rows) error {
		var (
			issue, page, year sql.NullInt64
			month, pdf, text  sql.NullString
		)
		if err := rows.Scan(&issue, &page, &month, &year, &pdf, &text); err != nil {
			return err
		}
		pages = append(pages, types.PageRecord{
			IssueID:    int(issue.Int64),
			PageNumber: int(page.Int64),
			Month:      month.String,
			Year:       int(year.Int64),
			PDF:        pdf.String,
			Text:       text.String,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// ArticleSearch returns recipe-category articles whose headline, subhead
// or abstract contains term, ordered by pdf.
func (s *Store) ArticleSearch(ctx context.Context, term string) ([]types.ArticleRecord, error) {
	args := make([]any, 0, len(types.RecipeCategories)+3)
	for _, c := range types.RecipeCategories {
		args = append(args, int(c))
	}
	pattern := fuzzy(term)
	args = append(args, pattern, pattern, pattern)

	var articles []types.ArticleRecord
	err := s.query(ctx, articleSearchQuery, args, func(rows *sql.Rows) error {
		var (
			headline, subhead, abstract, pdf, pages sql.NullString
			category                                sql.NullInt64
		)
		if err := rows.Scan(&headline, &subhead, &abstract, &pdf, &pages, &category); err != nil {
			return err
		}
		articles = append(articles, types.ArticleRecord{
			Headline: headline.String,
			Subhead:  subhead.String,
			Abstract: abstract.String,
			PDF:      pdf.String,
			Pages:    pages.String,
			Category: types.Category(category.Int64),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Prevalence counts matching pages per issue, highest count first.
func (s *Store) Prevalence(ctx context.Context, term string) ([]types.IssueCount, error) {
	var counts []types.IssueCount
	err := s.query(ctx, prevalenceQuery, []any{fuzzy(term)}, func(rows *sql.Rows) error {
		var (
			issue, year, count sql.NullInt64
			pdf, month         sql.NullString
		)
		if err := rows.Scan(&issue, &pdf, &month, &year, &count); err != nil {
			return err
		}
		counts = append(counts, types.IssueCount{
			IssueID: int(issue.Int64),
			PDF:     pdf.String,
			Month:   month.String,
			Year:    int(year.Int64),
			Count:   int(count.Int64),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// RandomPick returns one article chosen by SQLite's RANDOM(). found is
// false when the articles table is empty.
func (s *Store) RandomPick(ctx context.Context) (types.ArticleRecord, bool, error) {
	var (
		a     types.ArticleRecord
		found bool
	)
	err := s.query(ctx, randomPickQuery, nil, func(rows *sql.Rows) error {
		var (
			headline, pdf, pages sql.NullString
			category             sql.NullInt64
		)
		if err := rows.Scan(&headline, &pdf, &pages, &category); err != nil {
			return err
		}
		a = types.ArticleRecord{
			Headline: headline.String,
			PDF:      pdf.String,
			Pages:    pages.String,
			Category: types.Category(category.Int64),
		}
		found = true
		return nil
	})
	return a, found, err
}
