package qtyaudit

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/parser"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/source"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	reasonNoHeader = "table candidates found but no header detected (page text present)"
	reasonNoText   = "page text extraction failed (possibly image) and no header detected"
	reasonFailed   = "PDF processing failed: "
	reasonNoMaster = "master summary PDF not found"
)

// Document is an open PDF. Page numbers are 1-based.
type Document interface {
	NumPages() int
	// Tables returns the raw grids of page n found with strategy s.
	Tables(n int, s config.Strategy) ([][][]string, error)
	// Text returns the plain text of page n.
	Text(n int) (string, error)
	Close() error
}

// Opener opens a PDF for extraction.
type Opener func(path string) (Document, error)

// Extractor turns drawing PDFs into line items.
type Extractor struct {
	Dict *config.Dictionary
	Open Opener
	// Preflight validates a file before it is opened. Nil skips validation.
	Preflight func(path string) (int, error)
}

// ExtractPlans extracts every plan file in order. A failing file adds a log
// line and the batch continues.
func (e *Extractor) ExtractPlans(files []string) ([]models.LineItem, []models.ExtractLog) {
	var (
		records []models.LineItem
		logs    []models.ExtractLog
	)
	for _, path := range files {
		recs, fileLogs := e.extractFile(path, false)
		records = append(records, recs...)
		logs = append(logs, fileLogs...)
	}
	return records, logs
}

// ExtractMaster extracts the master summary. Pages with text but without a
// summary marker are skipped.
func (e *Extractor) ExtractMaster(path string) ([]models.LineItem, []models.ExtractLog) {
	return e.extractFile(path, true)
}

func (e *Extractor) extractFile(path string, master bool) (records []models.LineItem, logs []models.ExtractLog) {
	name := filepath.Base(path)
	fail := func(page int, component string, err error) {
		ee := NewExtractionError(name, page, component, err)
		zap.L().Warn("PDF processing failed", zap.String("file", name), zap.Error(ee))
		records = nil
		logs = []models.ExtractLog{{File: name, Reason: reasonFailed + err.Error()}}
	}

	page := 0
	defer func() {
		if r := recover(); r != nil {
			fail(page, "pages", eris.Errorf("panic: %v", r))
		}
	}()

	if e.Preflight != nil {
		if _, err := e.Preflight(path); err != nil {
			fail(0, "preflight", err)
			return records, logs
		}
	}

	doc, err := e.Open(path)
	if err != nil {
		fail(0, "open", err)
		return records, logs
	}
	defer doc.Close()

	harvester := parser.NewHarvester(e.Dict)
	for page = 1; page <= doc.NumPages(); page++ {
		recs, pageLogs := e.extractPage(doc, harvester, path, page, master)
		records = append(records, recs...)
		logs = append(logs, pageLogs...)
	}
	zap.L().Debug("file extracted", zap.String("file", name), zap.Int("records", len(records)))
	return records, logs
}

func (e *Extractor) extractPage(doc Document, h *parser.Harvester, path string, n int, master bool) ([]models.LineItem, []models.ExtractLog) {
	name := filepath.Base(path)
	text, err := doc.Text(n)
	if err != nil {
		zap.L().Debug("page text unavailable", zap.Error(NewExtractionError(name, n, "text", err)))
		text = ""
	}
	text = norm.NFKC.String(text)
	hasText := strings.TrimSpace(text) != ""

	if master && hasText && !source.IsMasterPage(text, e.Dict) {
		zap.L().Debug("not a summary page", zap.String("file", name), zap.Int("page", n))
		return nil, nil
	}

	title := source.DetectTitle(text, e.Dict)
	base := models.LineItem{
		SourceFile: name,
		Page:       n,
		DrawingNo:  source.DetectDrawingNo(path, text, e.Dict),
		Title:      title,
		Floor:      source.DetectFloor(e.Dict, name, text),
		Trade:      source.DetectTrade(e.Dict, title, name, text),
	}

	var (
		records []models.LineItem
		logs    []models.ExtractLog
	)
	for g := range h.Grids(pageTables{doc: doc, n: n}) {
		header := parser.Locate(g, e.Dict)
		if !header.Found() {
			continue
		}
		recs := parser.Materialize(g, header, base, e.Dict)
		if len(recs) == 0 {
			continue
		}
		zap.L().Debug("table extracted", zap.String("file", name), zap.Int("page", n), zap.Int("rows", len(recs)))
		records = append(records, recs...)
		logs = append(logs, models.ExtractLog{File: name, Page: n, Title: title, Rows: len(recs)})
	}

	if len(records) == 0 {
		reason := reasonNoText
		if hasText {
			reason = reasonNoHeader
		}
		logs = append(logs, models.ExtractLog{File: name, Page: n, Title: title, Reason: reason})
	}
	return records, logs
}

// pageTables exposes one page of a Document to the harvester.
type pageTables struct {
	doc Document
	n   int
}

func (p pageTables) Tables(s config.Strategy) ([][][]string, error) {
	return p.doc.Tables(p.n, s)
}
