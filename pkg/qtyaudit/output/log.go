package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// WriteExtractLog writes one line per extraction attempt. Text fields are
// always quoted so the file reads the same in a text editor and a CSV
// reader.
func WriteExtractLog(path string, logs []models.ExtractLog) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, strings.Join(LogColumns, ","))
	for _, l := range logs {
		fmt.Fprintln(w, logLine(l))
	}
	if err := w.Flush(); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}

// AppendSystemLog adds a system line to an existing extraction log.
func AppendSystemLog(path, message string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return eris.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, logLine(models.ExtractLog{File: "system", Reason: message})); err != nil {
		return eris.Wrapf(err, "failed to append to %s", path)
	}
	return f.Close()
}

// WriteRuleLog writes the recognized quantity rule log.
func WriteRuleLog(path string, results []models.RecognizedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	sheet := RuleLogSheet("RuleLog", results)
	w := csv.NewWriter(f)
	if err := w.Write(sheet.Header); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	if err := w.WriteAll(sheet.Rows); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}

func logLine(l models.ExtractLog) string {
	return fmt.Sprintf("%s,%d,%s,%d,%s", quote(l.File), l.Page, quote(l.Title), l.Rows, quote(l.Reason))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
