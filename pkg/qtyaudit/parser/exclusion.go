package parser

import (
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
)

// Classify tells whether name is a subtotal marker, a noise label or a group
// row. Denylist tokens are checked first, then noise labels, then suffixes.
func Classify(name string, dict *config.Dictionary) models.Exclusion {
	folded := config.Compact(name)
	if folded == "" {
		return models.ExclusionNone
	}
	if containsAny(folded, dict.Denylist) {
		return models.ExclusionDenylist
	}
	if _, ok := dict.NoiseExact[folded]; ok {
		return models.ExclusionNoise
	}
	if containsAny(folded, dict.NoiseContains) {
		return models.ExclusionNoise
	}
	if HasGroupSuffix(name, dict) {
		return models.ExclusionGroupSuffix
	}
	return models.ExclusionNone
}

// HasGroupSuffix reports whether name ends in a group or subtotal suffix.
func HasGroupSuffix(name string, dict *config.Dictionary) bool {
	c := CompactCell(name)
	for _, re := range dict.GroupSuffix {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}
