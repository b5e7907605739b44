package pdfsrc

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Preflight validates path in relaxed mode and returns its page count.
func Preflight(path string) (int, error) {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	var n int
	err := guard(func() error {
		if err := api.ValidateFile(path, cfg); err != nil {
			return err
		}
		var err error
		n, err = api.PageCountFile(path)
		return err
	})
	if err != nil {
		return 0, eris.Wrapf(err, "preflight failed for %s", path)
	}
	return n, nil
}

// TextProbe reads the first pages of a file for master detection.
type TextProbe struct{}

// PageTexts returns the text of up to maxPages leading pages. Pages whose
// text cannot be read come back empty.
func (TextProbe) PageTexts(path string, maxPages int) ([]string, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	n := min(doc.NumPages(), maxPages)
	texts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		text, err := doc.Text(i)
		if err != nil {
			zap.L().Debug("probe page unreadable", zap.String("file", path), zap.Int("page", i), zap.Error(err))
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}
