package parser

import (
	"iter"
	"strings"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"go.uber.org/zap"
)

// PageTables is one PDF page as seen by a table extraction backend.
type PageTables interface {
	// Tables returns the raw grids found on the page with strategy s.
	Tables(s config.Strategy) ([][][]string, error)
}

// Harvester runs every configured strategy on a page and yields distinct grids.
type Harvester struct {
	Strategies       []config.Strategy
	MinNonemptyCells int
}

// NewHarvester returns a harvester using the strategies of dict.
func NewHarvester(dict *config.Dictionary) *Harvester {
	return &Harvester{
		Strategies:       dict.Strategies,
		MinNonemptyCells: dict.MinNonemptyCells,
	}
}

// Grids yields the normalized, de-duplicated grids of page in strategy order.
// Nothing is cached: every range over the sequence extracts the page again.
func (h *Harvester) Grids(page PageTables) iter.Seq[Grid] {
	return func(yield func(Grid) bool) {
		seen := make(map[string]struct{})
		for _, s := range h.Strategies {
			raw, err := page.Tables(s)
			if err != nil {
				zap.L().Warn("table strategy failed", zap.String("strategy", s.Name), zap.Error(err))
				continue
			}
			for _, r := range raw {
				g := NormalizeGrid(r)
				if countNonEmptyCells(g) < h.MinNonemptyCells {
					continue
				}
				key := canonicalKey(g)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if !yield(g) {
					return
				}
			}
		}
	}
}

// canonicalKey identifies a grid by its non-blank rows.
func canonicalKey(g Grid) string {
	var sb strings.Builder
	for _, row := range g {
		if blankRow(row) {
			continue
		}
		for j, c := range row {
			if j > 0 {
				sb.WriteByte(0x1f)
			}
			sb.WriteString(c)
		}
		sb.WriteByte(0x1e)
	}
	return sb.String()
}

func countNonEmptyCells(g Grid) int {
	count := 0
	for _, row := range g {
		for _, c := range row {
			if c != "" {
				count++
			}
		}
	}
	return count
}
