package qtyaudit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
)

type fakePage struct {
	text    string
	textErr error
	grids   [][][]string
	panics  bool
}

type fakeDoc struct {
	pages  []fakePage
	closed bool
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) Tables(n int, _ config.Strategy) ([][][]string, error) {
	p := d.pages[n-1]
	if p.panics {
		panic("corrupt content stream")
	}
	return p.grids, nil
}

func (d *fakeDoc) Text(n int) (string, error) {
	p := d.pages[n-1]
	return p.text, p.textErr
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// fakeOpener serves documents by base name; unknown names fail to open.
func fakeOpener(docs map[string]*fakeDoc) Opener {
	return func(path string) (Document, error) {
		doc, ok := docs[filepath.Base(path)]
		if !ok {
			return nil, errors.New("not a PDF")
		}
		return doc, nil
	}
}

func testDict(t *testing.T) *config.Dictionary {
	t.Helper()
	d, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default() failed: %v", err)
	}
	return d
}

// touch creates empty files named names under a new directory.
func touch(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", n, err)
		}
	}
	return dir
}

var (
	planGrid = [][]string{
		{"품명", "규격", "단위", "수량"},
		{"소나무", "H3.0", "주", "10"},
		{"잔디", "", "m2", "50"},
	}
	masterGrid = [][]string{
		{"품명", "규격", "단위", "수량"},
		{"소나무", "H3.0", "주", "10"},
		{"느티나무", "R10", "주", "5"},
	}
)
