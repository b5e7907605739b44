package qtyaudit

import "testing"

func TestShouldWriteWorkbook(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		opts     Options
		expected bool
	}{
		{Options{Mode: ModeExtract}, false},
		{Options{Mode: ModePresence}, true},
		{Options{Mode: ModeTotals, IncludeWorkbook: &no}, false},
		{Options{Mode: ModeExtract, IncludeWorkbook: &yes}, true},
	}
	for _, tt := range tests {
		if got := tt.opts.ShouldWriteWorkbook(); got != tt.expected {
			t.Errorf("ShouldWriteWorkbook(%+v) = %v, expected %v", tt.opts, got, tt.expected)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"extract", "presence", "totals", "recognized"} {
		if m, err := ParseMode(s); err != nil || string(m) != s {
			t.Errorf("ParseMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseMode("verbose"); err == nil {
		t.Error("ParseMode(\"verbose\") should fail")
	}
	if DefaultOptions().Mode != ModePresence {
		t.Errorf("default mode = %s", DefaultOptions().Mode)
	}
}
