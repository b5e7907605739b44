package qtyaudit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/output"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/recon"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/source"
	"go.uber.org/zap"
)

// Output file names.
const (
	PlanExtractFile       = "plan_extract.csv"
	MasterExtractFile     = "master_extract.csv"
	ExtractLogFile        = "extract_log.txt"
	PresenceSummaryFile   = "presence_summary.csv"
	TotalsSummaryFile     = "recon_summary.csv"
	RecognizedSummaryFile = "recognized_summary.csv"
	RuleLogFile           = "recognized_log.txt"
)

var workbookNames = map[Mode]string{
	ModeExtract:    "extract_detail.xlsx",
	ModePresence:   "presence_detail.xlsx",
	ModeTotals:     "recon_detail.xlsx",
	ModeRecognized: "recognized_detail.xlsx",
}

// Report is the outcome of a run.
type Report struct {
	RunID         string                    `json:"run_id,omitempty"`
	Mode          Mode                      `json:"mode"`
	Master        string                    `json:"master,omitempty"`
	PlanFiles     []string                  `json:"plan_files"`
	PlanRecords   []models.LineItem         `json:"plan_records,omitempty"`
	MasterRecords []models.LineItem         `json:"master_records,omitempty"`
	Logs          []models.ExtractLog       `json:"logs,omitempty"`
	Presence      []models.PresenceResult   `json:"presence,omitempty"`
	Totals        []models.TotalsResult     `json:"totals,omitempty"`
	Recognized    []models.RecognizedResult `json:"recognized,omitempty"`
	// Workbook is the detail workbook path, empty when none was written.
	Workbook string   `json:"workbook,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) warn(msg string, err error) {
	zap.L().Warn(msg, zap.Error(err))
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

// Runner wires extraction, reconciliation and output together.
type Runner struct {
	Dict      *config.Dictionary
	Extractor *Extractor
	Probe     source.TextProbe
	Workbook  output.WorkbookWriter
}

// Run executes one reconciliation run and writes its artifacts to
// opts.OutDir. Only output and input directory errors are returned; file and
// page failures end up in the extraction log.
func (r *Runner) Run(opts Options) (*Report, error) {
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, eris.Wrapf(err, "failed to create output directory %s", opts.OutDir)
	}

	files, err := source.Discover(opts.PDFDir)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: opts.RunID, Mode: opts.Mode}
	if len(files) == 0 {
		report.warn("nothing to reconcile in "+opts.PDFDir, ErrNoPDFs)
	}

	master, err := r.resolveMaster(files, opts)
	if err != nil {
		report.warn("master document", err)
	}
	if master != "" {
		report.Master = filepath.Base(master)
	}
	for _, f := range files {
		if master == "" || filepath.Base(f) != filepath.Base(master) {
			report.PlanFiles = append(report.PlanFiles, f)
		}
	}

	zap.L().Info("extracting",
		zap.String("run_id", opts.RunID),
		zap.String("master", report.Master),
		zap.Int("plans", len(report.PlanFiles)))

	var planLogs, masterLogs []models.ExtractLog
	report.PlanRecords, planLogs = r.Extractor.ExtractPlans(report.PlanFiles)
	if master != "" {
		report.MasterRecords, masterLogs = r.Extractor.ExtractMaster(master)
	}
	report.Logs = append(planLogs, masterLogs...)
	if master == "" {
		report.Logs = append(report.Logs, models.ExtractLog{File: "system", Reason: reasonNoMaster})
	}

	switch opts.Mode {
	case ModePresence:
		report.Presence = recon.Presence(report.PlanRecords, report.MasterRecords)
	case ModeTotals:
		report.Totals = recon.Totals(report.PlanRecords, report.MasterRecords,
			recon.TotalsOptions{GroupSynthesis: opts.GroupSynthesis}, r.Dict)
	case ModeRecognized:
		prior, err := recon.LoadPriorActuals(filepath.Join(opts.OutDir, TotalsSummaryFile))
		if err != nil {
			report.warn("prior totals ignored", err)
			prior = nil
		}
		report.Recognized = recon.Recognized(report.PlanRecords, report.MasterRecords, prior, r.Dict)
	}

	if err := r.writeArtifacts(report, opts); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Runner) resolveMaster(files []string, opts Options) (string, error) {
	if opts.Master != "" {
		path := opts.Master
		if _, err := os.Stat(path); err != nil && !filepath.IsAbs(path) {
			path = filepath.Join(opts.PDFDir, opts.Master)
		}
		if _, err := os.Stat(path); err != nil {
			return "", eris.Wrapf(err, "master override %s", opts.Master)
		}
		return path, nil
	}
	if len(files) == 0 {
		return "", ErrMasterNotFound
	}
	return source.ChooseMaster(files, r.Probe, r.Dict)
}

func (r *Runner) writeArtifacts(report *Report, opts Options) error {
	out := func(name string) string { return filepath.Join(opts.OutDir, name) }

	if err := output.WriteCSV(out(PlanExtractFile), output.RecordsSheet("", report.PlanRecords)); err != nil {
		return err
	}
	if err := output.WriteCSV(out(MasterExtractFile), output.RecordsSheet("", report.MasterRecords)); err != nil {
		return err
	}
	if err := output.WriteExtractLog(out(ExtractLogFile), report.Logs); err != nil {
		return err
	}

	switch opts.Mode {
	case ModePresence:
		if err := output.WriteCSV(out(PresenceSummaryFile), output.PresenceSheet("", report.Presence)); err != nil {
			return err
		}
	case ModeTotals:
		if err := output.WriteCSV(out(TotalsSummaryFile), output.TotalsSheet("", report.Totals)); err != nil {
			return err
		}
	case ModeRecognized:
		if err := output.WriteCSV(out(RecognizedSummaryFile), output.RecognizedSheet("", report.Recognized)); err != nil {
			return err
		}
		if err := output.WriteRuleLog(out(RuleLogFile), report.Recognized); err != nil {
			return err
		}
	}

	return r.writeWorkbook(report, opts)
}

// writeWorkbook writes the detail workbook or records in the extraction log
// why it was skipped.
func (r *Runner) writeWorkbook(report *Report, opts Options) error {
	if opts.Mode == ModeExtract && opts.IncludeWorkbook == nil {
		return nil
	}
	name := workbookNames[opts.Mode]
	path := filepath.Join(opts.OutDir, name)

	var reason error
	switch {
	case !opts.ShouldWriteWorkbook():
		reason = eris.Wrap(ErrWorkbookUnavailable, "disabled")
	case r.Workbook == nil || !r.Workbook.Available():
		reason = eris.Wrap(ErrWorkbookUnavailable, "writer not available")
	default:
		if err := r.Workbook.Write(path, detailWorkbook(name, report)); err != nil {
			reason = err
		}
	}

	if reason == nil {
		report.Workbook = path
		return nil
	}
	if !errors.Is(reason, ErrWorkbookUnavailable) {
		zap.L().Warn("workbook not written", zap.String("path", path), zap.Error(reason))
	}
	return output.AppendSystemLog(filepath.Join(opts.OutDir, ExtractLogFile),
		fmt.Sprintf("%s skipped: %v", name, reason))
}

func detailWorkbook(name string, report *Report) models.WorkbookData {
	wb := models.WorkbookData{BookName: name}
	metrics := []output.Metric{
		{Name: "run_id", Value: report.RunID},
		{Name: "mode", Value: string(report.Mode)},
		{Name: "master", Value: report.Master},
		{Name: "plan_files", Value: strconv.Itoa(len(report.PlanFiles))},
		{Name: "plan_records", Value: strconv.Itoa(len(report.PlanRecords))},
		{Name: "master_records", Value: strconv.Itoa(len(report.MasterRecords))},
	}

	var sheets []models.SheetData
	switch report.Mode {
	case ModePresence:
		for _, st := range []struct {
			sheet  string
			status models.PresenceStatus
		}{
			{"NotFound", models.StatusNotFound},
			{"WeakFound", models.StatusWeakFound},
			{"Excluded", models.StatusExcluded},
			{"Found", models.StatusFound},
		} {
			rows := filterBy(report.Presence, func(p models.PresenceResult) bool { return p.Status == st.status })
			metrics = append(metrics, output.Metric{Name: string(st.status), Value: strconv.Itoa(len(rows))})
			sheets = append(sheets, output.PresenceSheet(st.sheet, rows))
		}
	case ModeTotals:
		for _, st := range []struct {
			sheet  string
			status models.TotalsStatus
		}{
			{"Mismatch", models.StatusMismatch},
			{"OnlyInPlans", models.StatusOnlyInPlans},
			{"OnlyInMaster", models.StatusOnlyInMaster},
			{"OK", models.StatusOK},
		} {
			rows := filterBy(report.Totals, func(t models.TotalsResult) bool { return t.Status == st.status })
			metrics = append(metrics, output.Metric{Name: string(st.status), Value: strconv.Itoa(len(rows))})
			sheets = append(sheets, output.TotalsSheet(st.sheet, rows))
		}
	case ModeRecognized:
		for _, st := range []struct {
			sheet  string
			status models.RuleStatus
		}{
			{"Mismatch", models.RuleMismatch},
			{"Excluded", models.RuleExcluded},
			{"RuleNotFound", models.RuleNotFound},
			{"TreeCandidate", models.RuleTreeCandidate},
			{"OK", models.RuleOK},
		} {
			rows := filterBy(report.Recognized, func(r models.RecognizedResult) bool { return r.Status == st.status })
			metrics = append(metrics, output.Metric{Name: string(st.status), Value: strconv.Itoa(len(rows))})
			sheets = append(sheets, output.RecognizedSheet(st.sheet, rows))
		}
		sheets = append(sheets, output.RuleLogSheet("RuleLog", report.Recognized))
	}

	wb.Sheets = append(wb.Sheets, output.SummarySheet(metrics))
	wb.Sheets = append(wb.Sheets, sheets...)
	wb.Sheets = append(wb.Sheets,
		output.RecordsSheet("RawPlanExtract", report.PlanRecords),
		output.RecordsSheet("RawMasterExtract", report.MasterRecords),
		output.LogSheet("ExtractLog", report.Logs),
	)
	return wb
}

func filterBy[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
