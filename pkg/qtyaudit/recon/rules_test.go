package recon

import (
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

func TestParseRule(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		input  string
		status models.RuleStatus
		factor string
		note   string
	}{
		{"3주인정", "", "3", "factor:3"},
		{"1.5 주 인정", "", "1.5", "factor:1.5"},
		{"3주인정, 3주인정", "", "3", "factor:3"},
		{"2주인정 또는 3주인정", "", "3", "factor_conflict:2,3"},
		{"", models.RuleNotFound, "", "remark_empty"},
		{"수관폭 기준", models.RuleNotFound, "", "factor_not_found"},
		{"인정수량 제외 (3주인정)", models.RuleExcluded, "", "exclude_keyword"},
		{"산입 제외", models.RuleExcluded, "", "exclude_keyword"},
	}

	for _, tt := range tests {
		got := ParseRule(tt.input, dict)
		if got.Status != tt.status || got.Note != tt.note {
			t.Errorf("ParseRule(%q) = (%q, %q), expected (%q, %q)", tt.input, got.Status, got.Note, tt.status, tt.note)
		}
		if tt.factor == "" {
			if got.Factor.Valid {
				t.Errorf("ParseRule(%q) factor = %s, expected none", tt.input, got.Factor.Decimal)
			}
			continue
		}
		if !got.Factor.Valid || got.Factor.Decimal.String() != tt.factor {
			t.Errorf("ParseRule(%q) factor = %v, expected %s", tt.input, got.Factor, tt.factor)
		}
	}
}

func TestClassifyTree(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		input    string
		expected models.TreeClass
	}{
		{"느티나무 R10 주", models.ClassTree},
		{"소나무 H3.0×W1.5 주", models.ClassTree},
		{"낙엽 교목", models.ClassTree},
		{"이팝나무 근원 직경 8cm", models.ClassTree},
		{"회양목 주", models.ClassTreeCandidate},
		{"관목류", models.ClassTreeCandidate},
		{"보도블럭 m2", models.ClassNonTree},
		{"HDPE 관 100mm", models.ClassNonTree},
	}

	for _, tt := range tests {
		if got := ClassifyTree(tt.input, dict); got != tt.expected {
			t.Errorf("ClassifyTree(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}
