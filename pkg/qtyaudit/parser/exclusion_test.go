package parser

import (
	"testing"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

func TestClassify(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		input    string
		expected models.Exclusion
	}{
		{"소나무", models.ExclusionNone},
		{"", models.ExclusionNone},
		{"소 계", models.ExclusionDenylist},
		{"합계", models.ExclusionDenylist},
		{"SubTotal", models.ExclusionDenylist},
		{"TOTAL", models.ExclusionDenylist},
		{"품명", models.ExclusionNoise},
		{"인정 수량", models.ExclusionNoise},
		{"NOTE 1", models.ExclusionNoise},
		{"주) 규격은 시방서 참조", models.ExclusionNoise},
		{"교목 계", models.ExclusionNoise},
		{"초화 계", models.ExclusionGroupSuffix},
		{"Trees(group)", models.ExclusionGroupSuffix},
	}

	for _, tt := range tests {
		if got := Classify(tt.input, dict); got != tt.expected {
			t.Errorf("Classify(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestHasGroupSuffix(t *testing.T) {
	dict := testDict(t)
	tests := []struct {
		input    string
		expected bool
	}{
		{"관목계", true},
		{"관목 (계)", true},
		{"Shrubs(group)", true},
		{"산철쭉", false},
		{"계단", false},
	}

	for _, tt := range tests {
		if got := HasGroupSuffix(tt.input, dict); got != tt.expected {
			t.Errorf("HasGroupSuffix(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
