package recon

import (
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/parser"
)

func testDict(t *testing.T) *config.Dictionary {
	t.Helper()
	d, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default() failed: %v", err)
	}
	return d
}

// item builds a record the way the materializer would.
func item(dict *config.Dictionary, name, spec, unit, qty string) models.LineItem {
	return models.LineItem{
		Name:      name,
		Spec:      spec,
		Unit:      unit,
		QtyText:   qty,
		Qty:       parser.ParseQuantity(qty),
		Exclusion: parser.Classify(name, dict),
	}
}

func at(rec models.LineItem, file string, page int) models.LineItem {
	rec.SourceFile = file
	rec.Page = page
	return rec
}
