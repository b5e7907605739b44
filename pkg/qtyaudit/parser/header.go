package parser

import (
	"strings"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

var roleWeights = map[models.Role]int{
	models.RoleName:     3,
	models.RoleQuantity: 3,
}

// Locate finds the header of g within the first dict.ScanRows rows.
// Each row is tried alone and merged with the next row, so headers that wrap
// onto two lines resolve. The best qualifying view wins; it returns
// models.NoHeader() when no view maps both the name and quantity roles.
func Locate(g Grid, dict *config.Dictionary) models.Header {
	limit := min(len(g), dict.ScanRows)
	best := models.NoHeader()

	for i := 0; i < limit; i++ {
		views := [][]string{g[i]}
		if i+1 < limit {
			views = append(views, mergeRows(g[i], g[i+1]))
		}
		for n, view := range views {
			mapping, ok := mapView(view, dict)
			if !ok {
				continue
			}
			cand := models.Header{Row: i, Span: n + 1, Mapping: mapping, Score: score(mapping)}
			if better(cand, best) {
				best = cand
			}
		}
	}
	return best
}

// better orders candidate headers: higher score, then earlier row, then
// single-line before merged.
func better(a, b models.Header) bool {
	if !b.Found() {
		return a.Found()
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Span < b.Span
}

func score(m models.HeaderMapping) int {
	total := 0
	for role := range m {
		if w, ok := roleWeights[role]; ok {
			total += w
		} else {
			total++
		}
	}
	return total
}

// mapView assigns roles to the cells of one header view. Every cell takes the
// first unclaimed role whose keywords it contains; the quantity role then goes
// to the remaining cell that matches the highest priority quantity keyword.
func mapView(view []string, dict *config.Dictionary) (models.HeaderMapping, bool) {
	mapping := models.HeaderMapping{}
	claimed := make([]bool, len(view))
	folded := make([]string, len(view))
	for i, c := range view {
		folded[i] = config.Compact(c)
	}

	for i, cell := range folded {
		if cell == "" {
			continue
		}
		for _, r := range dict.Roles {
			if mapping.Has(r.Role) || !containsAny(cell, r.Keywords) {
				continue
			}
			mapping[r.Role] = i
			claimed[i] = true
			break
		}
	}

quantity:
	for _, kw := range dict.QuantityPriority {
		for i, cell := range folded {
			if claimed[i] || cell == "" {
				continue
			}
			if strings.Contains(cell, kw) {
				mapping[models.RoleQuantity] = i
				break quantity
			}
		}
	}

	if !mapping.Has(models.RoleName) || !mapping.Has(models.RoleQuantity) {
		return nil, false
	}
	return mapping, true
}

// mergeRows concatenates two rows cell by cell.
func mergeRows(a, b []string) []string {
	out := make([]string, max(len(a), len(b)))
	for i := range out {
		out[i] = NormalizeCell(cellAt(a, i) + " " + cellAt(b, i))
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
