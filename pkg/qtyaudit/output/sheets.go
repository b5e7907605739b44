// Package output renders extraction and reconciliation results as CSV,
// JSON and workbooks.
package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

var (
	RecordColumns = []string{
		"file", "page", "drawing_no", "table_title", "floor", "trade",
		"category", "symbol", "sub_group", "work_name", "spec", "unit",
		"qty_raw", "qty", "recognized_raw", "recognized_qty", "remark", "exclusion",
	}
	PresenceColumns = []string{
		"file", "page", "floor", "trade", "work_name", "spec", "unit", "qty",
		"status", "match_level", "master_hit", "master_pages",
	}
	TotalsColumns = []string{
		"work_name", "spec", "unit", "plan_total_qty", "master_total_qty", "diff",
		"status", "synthesized", "members", "sources", "pages", "master_pages",
	}
	RecognizedColumns = []string{
		"work_name", "spec", "unit", "class", "actual_qty", "actual_source", "factor",
		"expected_recognized_qty", "recognized_qty_in_master", "diff", "status",
		"rule_note", "remark", "sources", "pages",
	}
	RuleLogColumns = []string{"index", "work_name", "spec", "unit", "status", "rule_note", "remark"}
	LogColumns     = []string{"file", "page", "table_title", "row_count", "fail_reason"}
)

// RecordsSheet lists extracted line items.
func RecordsSheet(name string, records []models.LineItem) models.SheetData {
	s := models.SheetData{Name: name, Header: RecordColumns}
	for _, r := range records {
		s.Rows = append(s.Rows, []string{
			r.SourceFile, strconv.Itoa(r.Page), r.DrawingNo, r.Title, r.Floor, r.Trade,
			r.Category, r.Symbol, r.SubGroup, r.Name, r.Spec, r.Unit,
			r.QtyText, nullString(r.Qty), r.RecognizedText, nullString(r.Recognized), r.Remark,
			string(r.Exclusion),
		})
	}
	return s
}

// PresenceSheet lists presence results.
func PresenceSheet(name string, results []models.PresenceResult) models.SheetData {
	s := models.SheetData{Name: name, Header: PresenceColumns}
	for _, res := range results {
		r := res.Record
		s.Rows = append(s.Rows, []string{
			r.SourceFile, strconv.Itoa(r.Page), r.Floor, r.Trade, r.Name, r.Spec, r.Unit,
			nullString(r.Qty), string(res.Status), string(res.Level), res.MasterHit,
			joinInts(res.MasterPages),
		})
	}
	return s
}

// TotalsSheet lists quantity-sum results.
func TotalsSheet(name string, results []models.TotalsResult) models.SheetData {
	s := models.SheetData{Name: name, Header: TotalsColumns}
	for _, res := range results {
		synth := ""
		if res.Synthesized {
			synth = "Y"
		}
		s.Rows = append(s.Rows, []string{
			res.Key.Name, res.Key.Spec, res.Key.Unit,
			res.PlanTotal.String(), res.MasterTotal.String(), res.Diff.String(),
			string(res.Status), synth, strconv.Itoa(res.Members),
			strings.Join(res.Sources, ", "), joinInts(res.Pages), joinInts(res.MasterPages),
		})
	}
	return s
}

// RecognizedSheet lists recognized quantity results.
func RecognizedSheet(name string, results []models.RecognizedResult) models.SheetData {
	s := models.SheetData{Name: name, Header: RecognizedColumns}
	for _, res := range results {
		s.Rows = append(s.Rows, []string{
			res.Key.Name, res.Key.Spec, res.Key.Unit, string(res.Class),
			res.ActualQty.String(), res.ActualSource, nullString(res.Factor),
			nullString(res.Expected), nullString(res.Declared), nullString(res.Diff),
			string(res.Status), res.RuleNote, res.Remark,
			strings.Join(res.Sources, ", "), joinInts(res.Pages),
		})
	}
	return s
}

// RuleLogSheet lists the rule outcome of every checked tree row.
func RuleLogSheet(name string, results []models.RecognizedResult) models.SheetData {
	s := models.SheetData{Name: name, Header: RuleLogColumns}
	for i, res := range results {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(i + 1), res.Key.Name, res.Key.Spec, res.Key.Unit,
			string(res.Status), res.RuleNote, res.Remark,
		})
	}
	return s
}

// LogSheet lists extraction attempts.
func LogSheet(name string, logs []models.ExtractLog) models.SheetData {
	s := models.SheetData{Name: name, Header: LogColumns}
	for _, l := range logs {
		s.Rows = append(s.Rows, []string{l.File, strconv.Itoa(l.Page), l.Title, strconv.Itoa(l.Rows), l.Reason})
	}
	return s
}

// Metric is one row of a summary sheet.
type Metric struct {
	Name  string
	Value string
}

// SummarySheet lists metrics as name/value rows.
func SummarySheet(metrics []Metric) models.SheetData {
	s := models.SheetData{Name: "Summary", Header: []string{"metric", "value"}}
	for _, m := range metrics {
		s.Rows = append(s.Rows, []string{m.Name, m.Value})
	}
	return s
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
