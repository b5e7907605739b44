package source

import (
	"path/filepath"
	"strings"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
)

// DetectFloor returns the first floor label found in chunks, tried in order.
func DetectFloor(dict *config.Dictionary, chunks ...string) string {
	for _, chunk := range chunks {
		for _, re := range dict.Floors {
			m := re.FindStringSubmatch(chunk)
			if m == nil {
				continue
			}
			label := m[0]
			if len(m) > 1 && m[1] != "" {
				label = m[1]
			}
			return strings.Join(strings.Fields(label), "")
		}
	}
	return dict.DefaultFloor
}

// DetectTrade returns the category of the first trade keyword found in chunks.
func DetectTrade(dict *config.Dictionary, chunks ...string) string {
	for _, chunk := range chunks {
		folded := config.Compact(chunk)
		for _, t := range dict.Trades {
			if strings.Contains(folded, t.Keyword) {
				return t.Category
			}
		}
	}
	return dict.DefaultTrade
}

// DetectTitle returns the first line of text naming a quantity table.
func DetectTitle(text string, dict *config.Dictionary) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" && dict.TableTitle.MatchString(line) {
			return line
		}
	}
	return ""
}

// DetectDrawingNo reads the drawing number from the file name, falling back
// to a drawing number label in the page text.
func DetectDrawingNo(path, text string, dict *config.Dictionary) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if m := dict.DrawingNoFile.FindStringSubmatch(stem); m != nil {
		return m[len(m)-1]
	}
	if m := dict.DrawingNoText.FindStringSubmatch(text); m != nil {
		return m[len(m)-1]
	}
	return ""
}
