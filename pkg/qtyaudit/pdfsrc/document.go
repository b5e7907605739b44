// Package pdfsrc reads drawing PDFs: table grids come from tabula's
// geometric detector, page text from ledongthuc/pdf.
package pdfsrc

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"go.uber.org/zap"
)

// Document is an open PDF. Page numbers are 1-based.
type Document struct {
	path  string
	tab   *reader.Reader
	txt   *pdf.Reader
	file  *os.File
	pages int

	cached int
	page   *model.Page
}

// Open opens path for table and text extraction. A file the text reader
// cannot parse is still usable for tables.
func Open(path string) (*Document, error) {
	tab, err := reader.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open %s", path)
	}
	n, err := tab.PageCount()
	if err != nil {
		tab.Close()
		return nil, eris.Wrapf(err, "failed to count pages of %s", path)
	}

	doc := &Document{path: path, tab: tab, pages: n}
	if err := guard(func() error {
		f, r, err := pdf.Open(path)
		if err != nil {
			return err
		}
		doc.file, doc.txt = f, r
		return nil
	}); err != nil {
		zap.L().Warn("text layer unavailable", zap.String("file", path), zap.Error(err))
	}
	return doc, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return d.pages }

// Close releases both readers.
func (d *Document) Close() error {
	var err error
	if d.file != nil {
		err = d.file.Close()
	}
	if cerr := d.tab.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Tables returns the table grids found on page n under strategy s.
func (d *Document) Tables(n int, s config.Strategy) ([][][]string, error) {
	page, err := d.modelPage(n)
	if err != nil {
		return nil, err
	}

	view := model.NewPage(page.Width, page.Height)
	view.RawText = page.RawText
	view.RawLines = linesFor(page.RawLines, s)

	det := tables.NewGeometricDetector()
	if err := det.Configure(detectorConfig(s, len(view.RawLines) > 0)); err != nil {
		return nil, eris.Wrap(err, "failed to configure table detector")
	}

	var found []*model.Table
	err = guard(func() error {
		var derr error
		found, derr = det.Detect(view)
		return derr
	})
	if err != nil {
		return nil, eris.Wrapf(err, "table detection failed on page %d of %s", n, d.path)
	}

	grids := make([][][]string, 0, len(found))
	for _, t := range found {
		grid := make([][]string, len(t.Rows))
		for i, row := range t.Rows {
			grid[i] = make([]string, len(row))
			for j, cell := range row {
				grid[i][j] = cell.Text
			}
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

// Text returns the plain text of page n. Without a usable text layer the
// positioned fragments are joined instead.
func (d *Document) Text(n int) (string, error) {
	if d.txt != nil {
		var text string
		err := guard(func() error {
			p := d.txt.Page(n)
			if p.V.IsNull() {
				return eris.Errorf("page %d not found", n)
			}
			var perr error
			text, perr = p.GetPlainText(nil)
			return perr
		})
		if err == nil {
			return text, nil
		}
		zap.L().Debug("plain text failed, using fragments",
			zap.String("file", d.path), zap.Int("page", n), zap.Error(err))
	}

	page, err := d.modelPage(n)
	if err != nil {
		return "", err
	}
	if len(page.RawText) == 0 {
		return "", eris.Errorf("no text on page %d of %s", n, d.path)
	}
	parts := make([]string, len(page.RawText))
	for i, f := range page.RawText {
		parts[i] = f.Text
	}
	return strings.Join(parts, " "), nil
}

// modelPage loads text fragments and ruling lines for page n, keeping the
// last page around since every strategy asks for the same one.
func (d *Document) modelPage(n int) (*model.Page, error) {
	if n < 1 || n > d.pages {
		return nil, eris.Errorf("page %d out of range (1-%d)", n, d.pages)
	}
	if d.page != nil && d.cached == n {
		return d.page, nil
	}

	var page *model.Page
	err := guard(func() error {
		src, err := d.tab.GetPage(n - 1)
		if err != nil {
			return err
		}
		width, _ := src.Width()
		height, _ := src.Height()
		page = model.NewPage(width, height)
		page.Number = n

		frags, err := d.tab.ExtractTextFragments(src)
		if err != nil {
			return err
		}
		for _, f := range frags {
			page.RawText = append(page.RawText, model.TextFragment{
				Text:     f.Text,
				BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
				FontSize: f.FontSize,
				FontName: f.FontName,
			})
		}

		contents, err := src.Contents()
		if err != nil {
			return err
		}
		ge := graphicsstate.NewGraphicsExtractor()
		for _, obj := range contents {
			stream, ok := obj.(*core.Stream)
			if !ok {
				continue
			}
			data, err := stream.Decode()
			if err != nil {
				return err
			}
			if err := ge.ExtractFromBytes(data); err != nil {
				return err
			}
		}
		page.RawLines = append(page.RawLines, ge.ToModelLines()...)
		page.RawLines = append(page.RawLines, ge.ToModelRectangles()...)
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read page %d of %s", n, d.path)
	}

	d.cached, d.page = n, page
	return page, nil
}

// linesFor keeps the ruling lines a strategy is allowed to see. An axis set
// to text drops lines running along it; rectangles only count when both
// axes use lines.
func linesFor(all []model.Line, s config.Strategy) []model.Line {
	keepVertical := s.Vertical == config.StrategyLines
	keepHorizontal := s.Horizontal == config.StrategyLines

	out := make([]model.Line, 0, len(all))
	for _, l := range all {
		if l.IsRect {
			if keepVertical && keepHorizontal {
				out = append(out, l)
			}
			continue
		}
		dx := abs(l.End.X - l.Start.X)
		dy := abs(l.End.Y - l.Start.Y)
		switch {
		case dy > dx && keepVertical:
			out = append(out, l)
		case dy <= dx && keepHorizontal:
			out = append(out, l)
		}
	}
	return out
}

func detectorConfig(s config.Strategy, haveLines bool) tables.Config {
	cfg := tables.DefaultConfig()
	cfg.UseLines = haveLines
	cfg.UseWhitespace = s.Vertical == config.StrategyText || s.Horizontal == config.StrategyText || !haveLines
	if s.Tolerance > 0 {
		cfg.AlignmentTolerance = s.Tolerance
	}
	return cfg
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// guard turns a panic inside a PDF library into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.New(fmt.Sprintf("pdf library panic: %v", r))
		}
	}()
	return fn()
}
