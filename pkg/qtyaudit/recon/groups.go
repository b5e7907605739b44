// Package recon reconciles plan quantities against the master summary.
package recon

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/models"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/parser"
)

// Group is a master subtotal row and the item names listed under it.
type Group struct {
	Name    string
	Row     models.LineItem
	Members []string
}

// Groups is the ordered result of BuildGroups.
type Groups []Group

// MemberOf returns the name of the group that lists item, if any.
func (gs Groups) MemberOf(item string) (string, bool) {
	for _, g := range gs {
		if slices.Contains(g.Members, item) {
			return g.Name, true
		}
	}
	return "", false
}

// BuildGroups walks master records in order, keeping a current group.
// A group header opens a new group and is never a member; other item rows
// join the current group. Rows before the first header belong to no group.
func BuildGroups(master []models.LineItem, dict *config.Dictionary) Groups {
	var groups Groups
	current := -1
	for _, rec := range master {
		if rec.Name == "" {
			continue
		}
		if IsGroupHeader(rec.Name, dict) {
			groups = append(groups, Group{Name: rec.Name, Row: rec})
			current = len(groups) - 1
			continue
		}
		if current < 0 || rec.Excluded() {
			continue
		}
		g := &groups[current]
		if !slices.Contains(g.Members, rec.Name) {
			g.Members = append(g.Members, rec.Name)
		}
	}
	return groups
}

// IsGroupHeader reports whether a master row name denotes an aggregate group.
func IsGroupHeader(name string, dict *config.Dictionary) bool {
	if parser.HasGroupSuffix(name, dict) {
		return true
	}
	folded := config.Compact(name)
	for _, m := range dict.AreaMarkers {
		if strings.Contains(folded, m) {
			return true
		}
	}
	if _, ok := dict.GroupVocabulary[folded]; ok {
		return true
	}
	if len(strings.Fields(name)) <= 2 && utf8.RuneCountInString(folded) <= dict.GroupShortMaxRunes {
		for _, tok := range dict.CategoryTokens {
			if strings.Contains(folded, tok) {
				return true
			}
		}
	}
	return false
}
