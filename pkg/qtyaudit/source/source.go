// Package source classifies input PDFs and derives page context tags.
package source

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"go.uber.org/zap"
)

// ErrMasterNotFound indicates no file looks like the master summary sheet.
var ErrMasterNotFound = errors.New("no master document found")

// TextProbe reads the text of the first pages of a PDF.
type TextProbe interface {
	PageTexts(path string, maxPages int) ([]string, error)
}

// Discover lists the PDF files directly under dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read input directory %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// MasterByName returns the first file whose base name matches a master pattern.
// Patterns are tried in order, so an earlier pattern outranks a later one.
func MasterByName(files []string, dict *config.Dictionary) string {
	for _, re := range dict.MasterFilePatterns {
		for _, f := range files {
			if re.MatchString(filepath.Base(f)) {
				return f
			}
		}
	}
	return ""
}

// ChooseMaster picks the master document: by file name first, then by the
// number of master keywords in the first pages of each file.
func ChooseMaster(files []string, probe TextProbe, dict *config.Dictionary) (string, error) {
	if m := MasterByName(files, dict); m != "" {
		return m, nil
	}

	best, bestHits := "", 0
	for _, f := range files {
		texts, err := probe.PageTexts(f, dict.MasterProbePages)
		if err != nil {
			zap.L().Warn("master probe failed", zap.String("file", filepath.Base(f)), zap.Error(err))
			continue
		}
		hits := 0
		for _, text := range texts {
			hits += keywordHits(text, dict.MasterKeywords)
		}
		if hits > bestHits {
			best, bestHits = f, hits
		}
	}
	if best == "" {
		return "", ErrMasterNotFound
	}
	return best, nil
}

// IsMasterPage reports whether a master page should be scanned for tables.
// Pages without extractable text are always scanned.
func IsMasterPage(text string, dict *config.Dictionary) bool {
	folded := config.Compact(text)
	if folded == "" {
		return true
	}
	for _, m := range dict.MasterPageMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	return false
}

func keywordHits(text string, keywords []string) int {
	folded := config.Compact(text)
	hits := 0
	for _, kw := range keywords {
		hits += strings.Count(folded, kw)
	}
	return hits
}
