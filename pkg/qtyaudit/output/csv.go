package output

import (
	"bufio"
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// bom makes spreadsheet applications read the file as UTF-8.
const bom = "\ufeff"

// WriteCSV writes sheet to path as UTF-8 CSV with a byte order mark.
func WriteCSV(path string, sheet models.SheetData) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(bom); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	w := csv.NewWriter(bw)
	if err := w.Write(sheet.Header); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	if err := w.WriteAll(sheet.Rows); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	if err := bw.Flush(); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	return f.Close()
}
