package output

import (
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// WorkbookWriter writes audit workbooks.
type WorkbookWriter interface {
	// Available reports whether workbooks can be produced at all.
	Available() bool
	Write(path string, wb models.WorkbookData) error
}

// ExcelWriter writes xlsx workbooks with excelize.
type ExcelWriter struct{}

func (ExcelWriter) Available() bool { return true }

// Write creates an xlsx file with one sheet per wb.Sheets entry. Cells that
// look numeric are stored as numbers.
func (ExcelWriter) Write(path string, wb models.WorkbookData) error {
	if len(wb.Sheets) == 0 {
		return eris.Errorf("workbook %s has no sheets", wb.BookName)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.L().Warn("failed to close workbook", zap.String("path", path), zap.Error(err))
		}
	}()

	for i, sheet := range wb.Sheets {
		name := sheetName(sheet.Name, i)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return eris.Wrapf(err, "failed to name sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return eris.Wrapf(err, "failed to add sheet %q", name)
		}
		if err := writeSheet(f, name, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, sheet models.SheetData) error {
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return eris.Wrapf(err, "failed to write header of %q", name)
	}

	for rowIdx, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return eris.Wrap(err, "invalid cell coordinates")
		}
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = parseValue(v)
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return eris.Wrapf(err, "failed to write row %d of %q", rowIdx+2, name)
		}
	}
	return nil
}

// sheetName keeps titles within the 31 character limit and non-empty.
func sheetName(name string, idx int) string {
	if name == "" {
		return "Sheet" + strconv.Itoa(idx+1)
	}
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// DisabledWriter stands in when workbook output is switched off or the
// writer cannot be used.
type DisabledWriter struct{}

func (DisabledWriter) Available() bool { return false }

func (DisabledWriter) Write(path string, _ models.WorkbookData) error {
	return eris.Errorf("workbook output disabled for %s", path)
}
