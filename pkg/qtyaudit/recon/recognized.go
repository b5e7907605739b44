package recon

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

const (
	ActualFromPrior  = "prior"
	ActualFromMaster = "master"
	ActualNone       = "none"
)

// Recognized checks the declared recognized quantity of every tree row in the
// master against actual quantity times the factor in its remark.
//
// The actual quantity comes from prior (a previous totals run) when it has the
// key, else from the master row itself, else it is zero. Tree candidates are
// reported for review without a numeric check; other rows are skipped.
func Recognized(plans, master []models.LineItem, prior map[models.Key]decimal.Decimal, dict *config.Dictionary) []models.RecognizedResult {
	plansByKey := map[models.Key][]models.LineItem{}
	for _, rec := range plans {
		if rec.Name != "" && !rec.Excluded() {
			plansByKey[rec.Key()] = append(plansByKey[rec.Key()], rec)
		}
	}

	var results []models.RecognizedResult
	for _, rec := range master {
		if rec.Name == "" || rec.Excluded() {
			continue
		}
		related := plansByKey[rec.Key()]
		class := ClassifyTree(treeText(rec, related), dict)
		if class == models.ClassNonTree {
			continue
		}

		prov := newProvenance()
		prov.add(rec)
		for _, p := range related {
			prov.add(p)
		}
		res := models.RecognizedResult{
			Key:      rec.Key(),
			Class:    class,
			Declared: rec.Recognized,
			Remark:   rec.Remark,
			Sources:  prov.sortedSources(),
			Pages:    prov.sortedPages(),
		}
		res.ActualQty, res.ActualSource = actualQuantity(rec, prior)

		if class == models.ClassTreeCandidate {
			res.Status = models.RuleTreeCandidate
			results = append(results, res)
			continue
		}

		rule := ParseRule(rec.Remark, dict)
		res.RuleNote = rule.Note
		if rule.Status != "" {
			res.Status = rule.Status
			results = append(results, res)
			continue
		}

		res.Factor = rule.Factor
		expected := res.ActualQty.Mul(rule.Factor.Decimal)
		res.Expected = decimal.NewNullDecimal(expected)
		switch {
		case !rec.Recognized.Valid:
			res.Status = models.RuleMismatch
		default:
			res.Diff = decimal.NewNullDecimal(expected.Sub(rec.Recognized.Decimal))
			if withinTolerance(expected, rec.Recognized.Decimal, dict) {
				res.Status = models.RuleOK
			} else {
				res.Status = models.RuleMismatch
			}
		}
		results = append(results, res)
	}
	return results
}

func actualQuantity(rec models.LineItem, prior map[models.Key]decimal.Decimal) (decimal.Decimal, string) {
	if q, ok := prior[rec.Key()]; ok {
		return q, ActualFromPrior
	}
	if rec.Qty.Valid {
		return rec.Qty.Decimal, ActualFromMaster
	}
	return decimal.Zero, ActualNone
}

// treeText joins name, spec, unit and remark of rec with name, spec and
// remark of the related plan rows.
func treeText(rec models.LineItem, related []models.LineItem) string {
	parts := []string{rec.Name, rec.Spec, rec.Unit, rec.Remark}
	for _, p := range related {
		parts = append(parts, p.Name, p.Spec, p.Remark)
	}
	return strings.Join(parts, " ")
}
