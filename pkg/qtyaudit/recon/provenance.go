package recon

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// provenance accumulates contributing files and pages as sets.
type provenance struct {
	sources map[string]struct{}
	pages   map[int]struct{}
}

func newProvenance() *provenance {
	return &provenance{sources: map[string]struct{}{}, pages: map[int]struct{}{}}
}

func (p *provenance) add(rec models.LineItem) {
	if rec.SourceFile != "" {
		p.sources[rec.SourceFile] = struct{}{}
	}
	if rec.Page > 0 {
		p.pages[rec.Page] = struct{}{}
	}
}

func (p *provenance) sortedSources() []string {
	out := make([]string, 0, len(p.sources))
	for s := range p.sources {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

func (p *provenance) sortedPages() []int {
	out := make([]int, 0, len(p.pages))
	for n := range p.pages {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func pagesOf(rows []models.LineItem) []int {
	p := newProvenance()
	for _, r := range rows {
		p.add(r)
	}
	return p.sortedPages()
}

// withinTolerance reports whether |a - b| <= dict.Tolerance.
func withinTolerance(a, b decimal.Decimal, dict *config.Dictionary) bool {
	return a.Sub(b).Abs().LessThanOrEqual(dict.Tolerance)
}
