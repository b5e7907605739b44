package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

func TestWriteExtractLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract_log.txt")
	logs := []models.ExtractLog{
		{File: "L-101.pdf", Page: 1, Title: "식재 수량표", Rows: 4},
		{File: "L-102.pdf", Page: 2, Reason: `say "hi"`},
	}
	if err := WriteExtractLog(path, logs); err != nil {
		t.Fatalf("WriteExtractLog failed: %v", err)
	}
	if err := AppendSystemLog(path, "recon_detail.xlsx skipped: disabled"); err != nil {
		t.Fatalf("AppendSystemLog failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	expected := []string{
		"file,page,table_title,row_count,fail_reason",
		`"L-101.pdf",1,"식재 수량표",4,""`,
		`"L-102.pdf",2,"",0,"say ""hi"""`,
		`"system",0,"",0,"recon_detail.xlsx skipped: disabled"`,
	}
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, expected %d: %q", len(lines), len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("log should parse as CSV: %v", err)
	}
	if records[2][4] != `say "hi"` {
		t.Errorf("reason = %q", records[2][4])
	}
}

func TestWriteRuleLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recognized_log.txt")
	results := []models.RecognizedResult{
		{Key: models.Key{Name: "느티나무", Spec: "R10", Unit: "주"}, Status: models.RuleOK, RuleNote: "factor:3", Remark: "3주인정"},
	}
	if err := WriteRuleLog(path, results); err != nil {
		t.Fatalf("WriteRuleLog failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	expected := "index,work_name,spec,unit,status,rule_note,remark\n1,느티나무,R10,주,OK,factor:3,3주인정\n"
	if string(data) != expected {
		t.Errorf("rule log = %q, expected %q", data, expected)
	}
}
