// Package qtyaudit reconciles the quantity tables of landscape plan drawings
// against the master quantity summary.
package qtyaudit

import "github.com/rotisserie/eris"

// Mode represents the reconciliation mode.
type Mode string

const (
	// ModeExtract only extracts plan and master tables.
	ModeExtract Mode = "extract"
	// ModePresence checks that every plan item appears in the master.
	ModePresence Mode = "presence"
	// ModeTotals compares summed plan quantities with master totals.
	ModeTotals Mode = "totals"
	// ModeRecognized checks recognized quantities of trees against remark rules.
	ModeRecognized Mode = "recognized"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeExtract, ModePresence, ModeTotals, ModeRecognized:
		return m, nil
	}
	return "", eris.Errorf("invalid mode: %s (must be extract, presence, totals, or recognized)", s)
}

// Options configures a run.
type Options struct {
	// Mode specifies the reconciliation mode.
	Mode Mode
	// PDFDir is the directory holding the drawing PDFs.
	PDFDir string
	// OutDir receives every output artifact.
	OutDir string
	// Master overrides master detection when set.
	Master string
	// GroupSynthesis adds group rows and their summed members to totals.
	GroupSynthesis bool
	// IncludeWorkbook specifies whether to write the detail workbook.
	// If nil, defaults to true for every mode except extract.
	IncludeWorkbook *bool
	// RunID is stamped on the summary sheet.
	RunID string
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Mode:   ModePresence,
		PDFDir: ".",
		OutDir: "output",
	}
}

// ShouldWriteWorkbook returns whether to write the detail workbook.
func (o Options) ShouldWriteWorkbook() bool {
	if o.IncludeWorkbook != nil {
		return *o.IncludeWorkbook
	}
	return o.Mode != ModeExtract
}
