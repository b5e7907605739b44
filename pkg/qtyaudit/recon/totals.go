package recon

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// TotalsOptions configures quantity-sum reconciliation.
type TotalsOptions struct {
	// GroupSynthesis adds master group rows as keys whose plan total also
	// counts every plan record named in the group.
	GroupSynthesis bool
}

type planTotal struct {
	sum  decimal.Decimal
	prov *provenance
}

type masterTotal struct {
	qty   decimal.Decimal
	set   bool
	pages *provenance
}

// Totals sums plan quantities per key and compares them with master totals.
// Results are sorted by key.
func Totals(plans, master []models.LineItem, opts TotalsOptions, dict *config.Dictionary) []models.TotalsResult {
	planSums := sumPlans(plans)
	masterSums := masterTotals(master)

	synth := map[models.Key]int{}
	if opts.GroupSynthesis {
		byName := map[string][]models.LineItem{}
		for _, rec := range plans {
			if !rec.Excluded() {
				byName[rec.Name] = append(byName[rec.Name], rec)
			}
		}
		// Group rows sharing a key add up like their member sums do.
		groupQty := map[models.Key]decimal.Decimal{}
		for _, g := range BuildGroups(master, dict) {
			key := g.Row.Key()
			// The group row's own exact-key plan total, if any, is kept and
			// the member sums are added on top of it.
			pt, ok := planSums[key]
			if !ok {
				pt = &planTotal{prov: newProvenance()}
				planSums[key] = pt
			}
			for _, name := range g.Members {
				for _, rec := range byName[name] {
					if rec.Qty.Valid {
						pt.sum = pt.sum.Add(rec.Qty.Decimal)
					}
					pt.prov.add(rec)
				}
			}
			mt := masterSums[key]
			if mt == nil {
				mt = &masterTotal{pages: newProvenance()}
				masterSums[key] = mt
			}
			if g.Row.Qty.Valid {
				groupQty[key] = groupQty[key].Add(g.Row.Qty.Decimal)
				mt.qty, mt.set = groupQty[key], true
			}
			mt.pages.add(g.Row)
			synth[key] += len(g.Members)
		}
	}

	keys := make([]models.Key, 0, len(planSums)+len(masterSums))
	for k := range planSums {
		keys = append(keys, k)
	}
	for k := range masterSums {
		if _, ok := planSums[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, models.Key.Compare)

	results := make([]models.TotalsResult, 0, len(keys))
	for _, k := range keys {
		pt, inPlans := planSums[k]
		mt, inMaster := masterSums[k]
		res := models.TotalsResult{Key: k}
		if inPlans {
			res.PlanTotal = pt.sum
			res.Sources = pt.prov.sortedSources()
			res.Pages = pt.prov.sortedPages()
		}
		if inMaster {
			res.MasterTotal = mt.qty
			res.MasterPages = mt.pages.sortedPages()
		}
		if n, ok := synth[k]; ok {
			res.Synthesized = true
			res.Members = n
		}
		res.Diff = res.PlanTotal.Sub(res.MasterTotal)

		switch {
		case inPlans && !inMaster:
			res.Status = models.StatusOnlyInPlans
		case inMaster && !inPlans:
			res.Status = models.StatusOnlyInMaster
		case withinTolerance(res.PlanTotal, res.MasterTotal, dict):
			res.Status = models.StatusOK
		default:
			res.Status = models.StatusMismatch
		}
		results = append(results, res)
	}
	return results
}

func sumPlans(plans []models.LineItem) map[models.Key]*planTotal {
	out := map[models.Key]*planTotal{}
	for _, rec := range plans {
		if rec.Name == "" || rec.Excluded() {
			continue
		}
		pt, ok := out[rec.Key()]
		if !ok {
			pt = &planTotal{prov: newProvenance()}
			out[rec.Key()] = pt
		}
		if rec.Qty.Valid {
			pt.sum = pt.sum.Add(rec.Qty.Decimal)
		}
		pt.prov.add(rec)
	}
	return out
}

// masterTotals keeps the first parsable total per key. A key whose rows hold
// no number totals zero.
func masterTotals(master []models.LineItem) map[models.Key]*masterTotal {
	out := map[models.Key]*masterTotal{}
	for _, rec := range master {
		if rec.Name == "" || rec.Excluded() {
			continue
		}
		mt, ok := out[rec.Key()]
		if !ok {
			mt = &masterTotal{pages: newProvenance()}
			out[rec.Key()] = mt
		}
		if !mt.set && rec.Qty.Valid {
			mt.qty, mt.set = rec.Qty.Decimal, true
		}
		mt.pages.add(rec)
	}
	return out
}
