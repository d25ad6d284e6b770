// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table renders result rows as an aligned plain-text table.
//
// Columns come in two styles. Fixed columns hold short metadata (issue,
// page, month, year) and are right-justified in at least MinFixedWidth
// cells. Free-text columns (headline, excerpt) are left-justified to their
// widest cell. Cells are never truncated or wrapped; widths are measured in
// terminal display cells, not bytes.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MinFixedWidth is the minimum width of a fixed metadata column.
const MinFixedWidth = 8

// Separator is placed between adjacent columns.
const Separator = "  "

// Style selects how a column is sized and justified.
type Style int

const (
	// Fixed columns are right-justified, at least MinFixedWidth wide.
	Fixed Style = iota
	// FreeText columns are left-justified to their widest cell.
	FreeText
)

// Column describes one table column.
type Column struct {
	Name  string
	Style Style
}

// Widths computes the display width of each column: the widest of the
// header cell and every value in that column, raised to MinFixedWidth for
// fixed columns. Short rows are padded with empty cells.
func Widths(cols []Column, rows [][]string) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(header(c))
		if c.Style == Fixed && widths[i] < MinFixedWidth {
			widths[i] = MinFixedWidth
		}
	}
	for _, row := range rows {
		for i := range cols {
			if i >= len(row) {
				break
			}
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// Render returns the header line followed by one line per row, in row
// order. widths may be nil, in which case Widths is used; a supplied width
// smaller than a cell grows to fit so nothing is truncated.
func Render(cols []Column, rows [][]string, widths []int) []string {
	computed := Widths(cols, rows)
	if widths != nil {
		for i := range computed {
			if i < len(widths) && widths[i] > computed[i] {
				computed[i] = widths[i]
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)

	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = header(c)
	}
	lines = append(lines, formatLine(cols, cells, computed))

	for _, row := range rows {
		for i := range cols {
			cells[i] = ""
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		lines = append(lines, formatLine(cols, cells, computed))
	}
	return lines
}

// Write renders the table to w, one line per row.
func Write(w io.Writer, cols []Column, rows [][]string) error {
	for _, line := range Render(cols, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func header(c Column) string {
	return strings.ToUpper(c.Name)
}

func formatLine(cols []Column, cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(Separator)
		}
		if c.Style == Fixed {
			b.WriteString(runewidth.FillLeft(cells[i], widths[i]))
		} else {
			b.WriteString(runewidth.FillRight(cells[i], widths[i]))
		}
	}
	// Trailing padding from a left-justified last column is noise.
	return strings.TrimRight(b.String(), " ")
}
