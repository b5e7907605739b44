package pdfsrc

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tsawler/tabula/model"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
)

func line(x1, y1, x2, y2 float64) model.Line {
	return model.Line{Start: model.Point{X: x1, Y: y1}, End: model.Point{X: x2, Y: y2}}
}

func TestLinesFor(t *testing.T) {
	horizontal := line(0, 10, 100, 10)
	vertical := line(50, 0, 50, 80)
	rect := model.Line{Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 20, Y: 20}, IsRect: true}
	all := []model.Line{horizontal, vertical, rect}

	tests := []struct {
		name     string
		strategy config.Strategy
		expected int
	}{
		{"lines/lines", config.Strategy{Vertical: "lines", Horizontal: "lines"}, 3},
		{"text/text", config.Strategy{Vertical: "text", Horizontal: "text"}, 0},
		{"lines/text", config.Strategy{Vertical: "lines", Horizontal: "text"}, 1},
		{"text/lines", config.Strategy{Vertical: "text", Horizontal: "lines"}, 1},
	}

	for _, tt := range tests {
		got := linesFor(all, tt.strategy)
		if len(got) != tt.expected {
			t.Errorf("%s: kept %d lines, expected %d", tt.name, len(got), tt.expected)
		}
	}

	if got := linesFor(all, config.Strategy{Vertical: "lines", Horizontal: "text"}); len(got) == 1 && got[0] != vertical {
		t.Errorf("lines/text kept %+v, expected the vertical line", got[0])
	}
}

func TestDetectorConfig(t *testing.T) {
	cfg := detectorConfig(config.Strategy{Vertical: "lines", Horizontal: "lines", Tolerance: 3}, true)
	if !cfg.UseLines || cfg.UseWhitespace || cfg.AlignmentTolerance != 3 {
		t.Errorf("lines/lines config = %+v", cfg)
	}

	cfg = detectorConfig(config.Strategy{Vertical: "lines", Horizontal: "lines"}, false)
	if cfg.UseLines || !cfg.UseWhitespace {
		t.Errorf("lines strategy without ruling lines should fall back to whitespace: %+v", cfg)
	}

	cfg = detectorConfig(config.Strategy{Vertical: "text", Horizontal: "text", Tolerance: 5}, false)
	if !cfg.UseWhitespace || cfg.AlignmentTolerance != 5 {
		t.Errorf("text/text config = %+v", cfg)
	}
}

func TestGuard(t *testing.T) {
	if err := guard(func() error { panic("broken xref") }); err == nil {
		t.Error("guard should turn a panic into an error")
	}
	want := errors.New("plain")
	if err := guard(func() error { return want }); err != want {
		t.Errorf("guard returned %v, expected %v", err, want)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Open should fail for a missing file")
	}
}

func TestPreflightMissingFile(t *testing.T) {
	if _, err := Preflight(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Preflight should fail for a missing file")
	}
}
