package recon

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/parser"
)

// LoadPriorActuals reads the summary CSV of a previous totals run and returns
// the actual quantity per key: the master total, or the plan total when the
// master column is empty. A missing file yields an empty map.
func LoadPriorActuals(path string) (map[models.Key]decimal.Decimal, error) {
	out := map[models.Key]decimal.Decimal{}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read header of %s", path)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range []string{"work_name", "spec", "unit"} {
		if _, ok := col[name]; !ok {
			return nil, eris.Errorf("%s: missing column %q", path, name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read %s", path)
		}
		text := field(row, "master_total_qty")
		if strings.TrimSpace(text) == "" {
			text = field(row, "plan_total_qty")
		}
		q := parser.ParseQuantity(text)
		if !q.Valid {
			continue
		}
		key := models.Key{
			Name: parser.NormalizeCell(field(row, "work_name")),
			Spec: parser.NormalizeCell(field(row, "spec")),
			Unit: parser.NormalizeCell(field(row, "unit")),
		}
		out[key] = q.Decimal
	}
	return out, nil
}
