package recon

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// Rule is the counting rule read from a remark.
type Rule struct {
	Status models.RuleStatus
	Factor decimal.NullDecimal
	Note   string
}

// ParseRule reads an exclusion marker or "N units recognized" factors from
// remark. An exclusion marker wins over any factor. When several different
// factors appear the largest is used and the note records the conflict.
func ParseRule(remark string, dict *config.Dictionary) Rule {
	if strings.TrimSpace(remark) == "" {
		return Rule{Status: models.RuleNotFound, Note: "remark_empty"}
	}
	if dict.RuleExclude.MatchString(remark) {
		return Rule{Status: models.RuleExcluded, Note: "exclude_keyword"}
	}

	var factors []decimal.Decimal
	var texts []string
	for _, m := range dict.RuleFactor.FindAllStringSubmatch(remark, -1) {
		f, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		dup := false
		for _, seen := range factors {
			if seen.Equal(f) {
				dup = true
				break
			}
		}
		if !dup {
			factors = append(factors, f)
			texts = append(texts, f.String())
		}
	}
	if len(factors) == 0 {
		return Rule{Status: models.RuleNotFound, Note: "factor_not_found"}
	}

	maxFactor := decimal.Max(factors[0], factors[1:]...)
	note := "factor:" + maxFactor.String()
	if len(factors) > 1 {
		note = "factor_conflict:" + strings.Join(texts, ",")
	}
	return Rule{Factor: decimal.NewNullDecimal(maxFactor), Note: note}
}

// ClassifyTree decides whether the text describing an item is about trees.
func ClassifyTree(text string, dict *config.Dictionary) models.TreeClass {
	folded := config.Compact(text)
	if containsAny(folded, dict.TreeStrong) || dict.TreeCaliper.MatchString(text) {
		return models.ClassTree
	}
	if containsAny(folded, dict.TreeWeak) {
		return models.ClassTreeCandidate
	}
	return models.ClassNonTree
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
