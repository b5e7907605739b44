// Package parser turns candidate table grids into line item records.
package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Grid is a table as rows of cell text. Rows may differ in width.
type Grid [][]string

// NormalizeCell folds compatibility characters and collapses every run of
// whitespace, including line breaks, to a single space.
func NormalizeCell(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// CompactCell is the comparison form of a cell: normalized with all whitespace removed.
func CompactCell(s string) string {
	return strings.ReplaceAll(NormalizeCell(s), " ", "")
}

// NormalizeRow normalizes every cell of row into a new slice.
func NormalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = NormalizeCell(c)
	}
	return out
}

// NormalizeGrid normalizes every cell of g into a new grid.
func NormalizeGrid(g [][]string) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = NormalizeRow(row)
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
