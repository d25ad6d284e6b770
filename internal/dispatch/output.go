// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fc-archive/internal/excerpt"
	"github.com/pdiddy/fc-archive/internal/table"
	"github.com/pdiddy/fc-archive/pkg/types"
)

// TextHit is a text-search row with its highlighted excerpt.
type TextHit struct {
	types.PageRecord `yaml:",inline"`
	Context          string `json:"context" yaml:"context"`
}

var (
	pageColumns = []table.Column{
		{Name: "issue", Style: table.Fixed},
		{Name: "page", Style: table.Fixed},
		{Name: "month", Style: table.Fixed},
		{Name: "year", Style: table.Fixed},
		{Name: "pdf", Style: table.Fixed},
		{Name: "context", Style: table.FreeText},
	}

	articleColumns = []table.Column{
		{Name: "headline", Style: table.FreeText},
		{Name: "category", Style: table.Fixed},
		{Name: "pdf", Style: table.Fixed},
		{Name: "pages", Style: table.Fixed},
	}

	randomColumns = []table.Column{
		{Name: "headline", Style: table.FreeText},
		{Name: "pdf", Style: table.Fixed},
		{Name: "pages", Style: table.Fixed},
	}

	countColumns = []table.Column{
		{Name: "issue", Style: table.Fixed},
		{Name: "month", Style: table.Fixed},
		{Name: "year", Style: table.Fixed},
		{Name: "pdf", Style: table.Fixed},
		{Name: "matches", Style: table.Fixed},
	}
)

// flatten replaces line breaks and tabs with spaces so a row stays on one
// line. Byte length is preserved.
var flatten = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

func (d *Dispatcher) writePages(pages []types.PageRecord, term string) error {
	hits := make([]TextHit, len(pages))
	for i, p := range pages {
		hits[i].PageRecord = p
		ex, ok := excerpt.Extract(p.Text, term)
		if !ok {
			// The datastore matched but the excerpt search did not, e.g. on
			// non-ASCII case folding differences.
			d.logger.Warn("match not visible in page text", "issue", p.IssueID, "page", p.PageNumber, "term", term)
			continue
		}
		hits[i].Context = flatten.Replace(ex.Text)
	}

	if d.format != types.OutputTable {
		return d.writeStructured(hits)
	}

	rows := make([][]string, len(hits))
	for i, h := range hits {
		rows[i] = []string{
			strconv.Itoa(h.IssueID),
			strconv.Itoa(h.PageNumber),
			h.Month,
			strconv.Itoa(h.Year),
			h.PDF,
			h.Context,
		}
	}
	return table.Write(d.out, pageColumns, rows)
}

func (d *Dispatcher) writeArticles(articles []types.ArticleRecord, withCategory bool) error {
	if d.format != types.OutputTable {
		return d.writeStructured(articles)
	}

	cols := randomColumns
	if withCategory {
		cols = articleColumns
	}

	rows := make([][]string, len(articles))
	for i, a := range articles {
		if withCategory {
			rows[i] = []string{a.Headline, a.Category.String(), a.PDF, a.Pages}
		} else {
			rows[i] = []string{a.Headline, a.PDF, a.Pages}
		}
	}
	return table.Write(d.out, cols, rows)
}

func (d *Dispatcher) writeCounts(counts []types.IssueCount) error {
	if d.format != types.OutputTable {
		return d.writeStructured(counts)
	}

	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{
			strconv.Itoa(c.IssueID),
			c.Month,
			strconv.Itoa(c.Year),
			c.PDF,
			strconv.Itoa(c.Count),
		}
	}
	return table.Write(d.out, countColumns, rows)
}

func (d *Dispatcher) writeStructured(v any) error {
	switch d.format {
	case types.OutputJSON:
		enc := json.NewEncoder(d.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case types.OutputYAML:
		enc := yaml.NewEncoder(d.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use table, json or yaml", d.format)
	}
}
