// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records and settings shared by the archive
// client: page and article records read from the archive database, the
// query modes, and the resolved CLI configuration.
package types

import "strconv"

// Category is the integer article category stored in articles.category_id.
type Category int

const (
	CategoryBasics         Category = 1
	CategoryWorldCuisines  Category = 2
	CategoryQuickDelicious Category = 3
	CategoryRecipe         Category = 4
	CategoryRepertoire     Category = 5
	CategoryDepartments    Category = 6
	CategoryLetters        Category = 7
)

var categoryNames = map[Category]string{
	CategoryBasics:         "Basics",
	CategoryWorldCuisines:  "World Cuisines",
	CategoryQuickDelicious: "Quick & Delicious",
	CategoryRecipe:         "Recipe",
	CategoryRepertoire:     "Repertoire",
	CategoryDepartments:    "Departments",
	CategoryLetters:        "Letters",
}

// RecipeCategories is the fixed allow-list used by article search.
var RecipeCategories = []Category{
	CategoryBasics,
	CategoryWorldCuisines,
	CategoryQuickDelicious,
	CategoryRecipe,
	CategoryRepertoire,
}

// String returns the display name, or "category N" for unknown ids.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "category " + strconv.Itoa(int(c))
}

// IsRecipe reports whether c is in RecipeCategories.
func (c Category) IsRecipe() bool {
	for _, rc := range RecipeCategories {
		if c == rc {
			return true
		}
	}
	return false
}

// PageRecord is one page of one issue joined with its issue metadata.
type PageRecord struct {
	IssueID    int    `json:"issue_id" yaml:"issue_id"`
	PageNumber int    `json:"page_number" yaml:"page_number"`
	Month      string `json:"month" yaml:"month"`
	Year       int    `json:"year" yaml:"year"`
	PDF        string `json:"pdf" yaml:"pdf"`
	Text       string `json:"-" yaml:"-"`
}

// ArticleRecord is one row of the articles table.
type ArticleRecord struct {
	Headline string   `json:"headline" yaml:"headline"`
	Subhead  string   `json:"subhead,omitempty" yaml:"subhead,omitempty"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	PDF      string   `json:"pdf" yaml:"pdf"`
	Pages    string   `json:"pages" yaml:"pages"`
	Category Category `json:"category_id" yaml:"category_id"`
}

// IssueCount is one row of a prevalence report: the number of pages in an
// issue whose text contains the search term.
type IssueCount struct {
	IssueID int    `json:"issue_id" yaml:"issue_id"`
	PDF     string `json:"pdf" yaml:"pdf"`
	Month   string `json:"month" yaml:"month"`
	Year    int    `json:"year" yaml:"year"`
	Count   int    `json:"count" yaml:"count"`
}

// Mode selects one entry of the query catalog.
type Mode string

const (
	ModeTextSearch    Mode = "text_search"
	ModeArticleSearch Mode = "article_search"
	ModePrevalence    Mode = "prevalence"
	ModeRandomPick    Mode = "random_pick"
)

// TakesTerm reports whether the mode needs a search term.
func (m Mode) TakesTerm() bool {
	return m != ModeRandomPick
}

// ResultSet holds the rows returned by one catalog query, in datastore
// order. Exactly one slice is populated, matching Mode.
type ResultSet struct {
	Mode     Mode
	Pages    []PageRecord
	Articles []ArticleRecord
	Counts   []IssueCount
}

// Len returns the number of rows for the set's mode.
func (r ResultSet) Len() int {
	switch r.Mode {
	case ModeTextSearch:
		return len(r.Pages)
	case ModeArticleSearch, ModeRandomPick:
		return len(r.Articles)
	case ModePrevalence:
		return len(r.Counts)
	}
	return 0
}
