package parser

import (
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// Materialize converts the rows below h into records. Provenance and context
// fields are copied from base.
//
// A blank name inherits the last non-blank name seen in this grid. Rows naming
// a subtotal, a noise label or a group are kept with their Exclusion set. Rows
// left without both name and quantity are dropped.
func Materialize(g Grid, h models.Header, base models.LineItem, dict *config.Dictionary) []models.LineItem {
	if !h.Found() {
		return nil
	}

	var records []models.LineItem
	lastName := ""
	for _, row := range g[min(h.DataStart(), len(g)):] {
		if blankRow(row) {
			continue
		}
		read := func(role models.Role) string {
			idx, ok := h.Mapping[role]
			if !ok {
				return ""
			}
			return cellAt(row, idx)
		}

		rec := base
		rec.Name = read(models.RoleName)
		if rec.Name == "" {
			rec.Name = lastName
		} else {
			lastName = rec.Name
		}
		rec.QtyText = read(models.RoleQuantity)
		rec.RecognizedText = read(models.RoleRecognized)
		if rec.Name == "" && rec.QtyText == "" && rec.RecognizedText == "" {
			continue
		}

		rec.Spec = read(models.RoleSpec)
		rec.Unit = read(models.RoleUnit)
		rec.Qty = ParseQuantity(rec.QtyText)
		rec.Recognized = ParseQuantity(rec.RecognizedText)
		rec.Remark = read(models.RoleRemark)
		rec.Category = read(models.RoleCategory)
		rec.Symbol = read(models.RoleSymbol)
		rec.SubGroup = read(models.RoleSubGroup)
		rec.Exclusion = Classify(rec.Name, dict)
		records = append(records, rec)
	}
	return records
}
